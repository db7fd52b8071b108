package viewdata

import (
	"html/template"
	"net/http/httptest"
	"testing"
)

func TestSetSite_KeepsNameWhenEmpty(t *testing.T) {
	prev := CurrentSite()
	defer SetSite(prev)

	Init("OSIS SMA 3")
	SetSite(Site{LogoURL: "/uploads/site/logo.png", Footer: template.HTML("<p>Jaya</p>")})

	st := CurrentSite()
	if st.Name != "OSIS SMA 3" {
		t.Errorf("Name = %q, want kept", st.Name)
	}
	if st.LogoURL != "/uploads/site/logo.png" {
		t.Errorf("LogoURL = %q", st.LogoURL)
	}

	vm := NewBaseVM(httptest.NewRequest("GET", "/", nil), "Beranda", "/")
	if vm.SiteName != "OSIS SMA 3" || vm.SiteFooter != "<p>Jaya</p>" || vm.IsLoggedIn {
		t.Errorf("BaseVM = %+v", vm)
	}
}

func TestInit_IgnoresEmpty(t *testing.T) {
	prev := CurrentSite()
	defer SetSite(prev)

	Init("OSIS Harapan")
	Init("")
	if SiteName() != "OSIS Harapan" {
		t.Errorf("SiteName = %q", SiteName())
	}
}
