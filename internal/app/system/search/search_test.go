package search

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPrefixFilter(t *testing.T) {
	tests := []struct {
		name  string
		q     string
		want  string
		unset bool
	}{
		{"empty leaves filter", "  ", "", true},
		{"folds case", "Ani", "^ani", false},
		{"escapes regex", "a.b*", `^a\.b\*`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := PrefixFilter(bson.M{"period_id": 1}, "full_name_ci", tt.q)
			got, ok := f["full_name_ci"]
			if tt.unset {
				if ok {
					t.Errorf("filter = %v, want no name clause", f)
				}
				return
			}
			m, _ := got.(bson.M)
			if m["$regex"] != tt.want {
				t.Errorf("regex = %v, want %q", m["$regex"], tt.want)
			}
			if f["period_id"] != 1 {
				t.Error("existing clauses must be kept")
			}
		})
	}
}

func TestNormalize_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxQueryLen+10)
	if got := []rune(Normalize(long)); len(got) != MaxQueryLen {
		t.Errorf("len = %d, want %d", len(got), MaxQueryLen)
	}
}
