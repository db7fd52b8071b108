// internal/app/features/settings/site.go
package settings

import (
	"context"

	settingsstore "github.com/osishub/osishub/internal/app/store/settings"
	"github.com/osishub/osishub/internal/app/system/markdown"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
)

// ToSite converts stored settings to the layout's site profile.
func ToSite(s models.SiteSettings) viewdata.Site {
	st := viewdata.Site{
		Name:      s.SiteName,
		LogoURL:   s.LogoURL,
		Instagram: s.Instagram,
	}
	if s.FooterMD != "" {
		st.Footer = markdown.ToHTML(s.FooterMD)
	}
	return st
}

// LoadSite publishes the saved profile to every page. Without a saved
// profile the configured name stays in place.
func LoadSite(ctx context.Context, store *settingsstore.Store) error {
	ok, err := store.Exists(ctx)
	if err != nil || !ok {
		return err
	}
	s, err := store.Get(ctx, "")
	if err != nil {
		return err
	}
	viewdata.SetSite(ToSite(s))
	return nil
}
