// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/members").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter carried into the
	// fallback URL, e.g. "period" keeps the list scoped to the same period.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" && acceptable(ret, opts) {
		return ret
	}

	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam + "_id"))
		}
		if param != "" && param != "all" {
			sep := "?"
			if strings.Contains(fallback, "?") {
				sep = "&"
			}
			fallback += sep + opts.PreserveQueryParam + "=" + url.QueryEscape(param)
		}
	}
	return fallback
}

func acceptable(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(ret, excluded) {
			return false
		}
	}
	return true
}

// Back URL configurations shared by the admin features.
var (
	PeriodsBackURL = BackURLOptions{
		AllowedPrefix:    "/periods",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new", "/wizard"},
		Fallback:         "/periods",
	}

	DivisionsBackURL = BackURLOptions{
		AllowedPrefix:      "/divisions",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new", "/logo"},
		Fallback:           "/divisions",
		PreserveQueryParam: "period",
	}

	PositionsBackURL = BackURLOptions{
		AllowedPrefix:    "/positions",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/positions",
	}

	MembersBackURL = BackURLOptions{
		AllowedPrefix:      "/members",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new", "/upload_csv", "/photo"},
		Fallback:           "/members",
		PreserveQueryParam: "period",
	}

	ProgramsBackURL = BackURLOptions{
		AllowedPrefix:      "/programs",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new"},
		Fallback:           "/programs",
		PreserveQueryParam: "period",
	}

	ContentsBackURL = BackURLOptions{
		AllowedPrefix:      "/contents",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new", "/image"},
		Fallback:           "/contents",
		PreserveQueryParam: "page",
	}
)
