package models

import "time"

// DefaultSiteName is shown when no site name is configured.
const DefaultSiteName = "OSIS"

// SiteSettings is the single site profile document edited by admins. It
// overrides the configured site name once saved.
type SiteSettings struct {
	ID         string `bson:"_id"`
	SiteName   string `bson:"site_name"`
	SchoolName string `bson:"school_name,omitempty"`
	Instagram  string `bson:"instagram,omitempty"`
	FooterMD   string `bson:"footer_md,omitempty"`

	LogoURL  string `bson:"logo_url,omitempty"`
	LogoPath string `bson:"logo_path,omitempty"`

	UpdatedAt     *time.Time `bson:"updated_at,omitempty"`
	UpdatedByName string     `bson:"updated_by_name,omitempty"`
}

// HasLogo reports whether a logo has been uploaded.
func (s SiteSettings) HasLogo() bool { return s.LogoURL != "" }
