// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"github.com/osishub/osishub/internal/app/system/authz"
	"github.com/osishub/osishub/internal/domain/models"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName      string
	SiteLogoURL   string
	SiteInstagram string
	SiteFooter    template.HTML

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string
	CSRFField template.HTML
}

// Site is the site profile shown in the layout of every page.
type Site struct {
	Name      string
	LogoURL   string
	Instagram string
	Footer    template.HTML
}

var (
	mu   sync.RWMutex
	site = Site{Name: models.DefaultSiteName}
)

// Init sets the site name shown in page headers. Call once at startup.
func Init(name string) {
	if name == "" {
		return
	}
	mu.Lock()
	site.Name = name
	mu.Unlock()
}

// SetSite replaces the site profile, e.g. after an admin saves it. An empty
// name keeps the current one.
func SetSite(s Site) {
	mu.Lock()
	defer mu.Unlock()
	if s.Name == "" {
		s.Name = site.Name
	}
	site = s
}

// CurrentSite returns the site profile.
func CurrentSite() Site {
	mu.RLock()
	defer mu.RUnlock()
	return site
}

// SiteName returns the configured site name.
func SiteName() string {
	return CurrentSite().Name
}

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)
	st := CurrentSite()
	return BaseVM{
		SiteName:      st.Name,
		SiteLogoURL:   st.LogoURL,
		SiteInstagram: st.Instagram,
		SiteFooter:    st.Footer,
		IsLoggedIn:    signedIn,
		Role:          role,
		UserName:      name,
		Title:         title,
		BackURL:       httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:   httpnav.CurrentPath(r),
		CSRFToken:     csrf.Token(r),
		CSRFField:     csrf.TemplateField(r),
	}
}
