// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
)

// MaxQueryLen caps the search text taken from a request.
const MaxQueryLen = 80

// Normalize trims q and cuts it to MaxQueryLen runes.
func Normalize(q string) string {
	q = strings.TrimSpace(q)
	if r := []rune(q); len(r) > MaxQueryLen {
		q = string(r[:MaxQueryLen])
	}
	return q
}

// PrefixFilter adds a case- and accent-insensitive prefix match on a folded
// field (e.g. "full_name_ci") to filter. An empty q leaves filter unchanged.
//
// Typical usage in list handlers:
//
//	filter := bson.M{"period_id": pid}
//	search.PrefixFilter(filter, "full_name_ci", query.Get(r, "q"))
func PrefixFilter(filter bson.M, field, q string) bson.M {
	q = Normalize(q)
	if q == "" {
		return filter
	}
	filter[field] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	return filter
}
