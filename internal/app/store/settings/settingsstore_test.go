package settingsstore_test

import (
	"testing"

	settingsstore "github.com/osishub/osishub/internal/app/store/settings"
	"github.com/osishub/osishub/internal/domain/models"
	"github.com/osishub/osishub/internal/testutil"
)

func TestStore_Get_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s, err := store.Get(ctx, "OSIS SMA 1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.SiteName != "OSIS SMA 1" || s.HasLogo() {
		t.Errorf("defaults = %+v", s)
	}
	s, _ = store.Get(ctx, "")
	if s.SiteName != models.DefaultSiteName {
		t.Errorf("empty fallback: SiteName = %q", s.SiteName)
	}
	if ok, _ := store.Exists(ctx); ok {
		t.Error("Exists before save should be false")
	}
}

func TestStore_SaveAndLogo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := settingsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.SetLogo(ctx, "/uploads/site/a.png", "site/a.png"); err != nil {
		t.Fatalf("SetLogo: %v", err)
	}
	in := models.SiteSettings{SiteName: "OSIS Harapan", SchoolName: "SMA Harapan", Instagram: "osisharapan", FooterMD: "**Jaya**", UpdatedByName: "Admin"}
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "ignored")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SiteName != "OSIS Harapan" || got.SchoolName != "SMA Harapan" || got.Instagram != "osisharapan" {
		t.Errorf("profile = %+v", got)
	}
	if got.LogoPath != "site/a.png" {
		t.Errorf("Save must keep the logo, got %q", got.LogoPath)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt not set")
	}
	if ok, _ := store.Exists(ctx); !ok {
		t.Error("Exists after save should be true")
	}
}
