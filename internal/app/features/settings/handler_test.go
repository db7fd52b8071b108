package settings_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/features/settings"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
	"github.com/osishub/osishub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*settings.Handler, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	root := t.TempDir()
	store, err := storage.NewLocal(storage.LocalConfig{BasePath: root, BaseURL: "/uploads"})
	if err != nil {
		t.Fatal(err)
	}
	images := uploads.Images{Store: store, Log: logger}

	prev := viewdata.CurrentSite()
	t.Cleanup(func() { viewdata.SetSite(prev) })

	return settings.NewHandler(db, images, "OSIS Konfigurasi", uierrors.NewErrorLogger(logger), logger), root
}

func serve(t *testing.T, h http.HandlerFunc, r *http.Request) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	func() {
		defer func() {
			if p := recover(); p != nil {
				t.Logf("recovered from panic (template not initialized): %v", p)
			}
		}()
		h(rec, r)
	}()
	return rec
}

func TestHandleSettings_SavesAndPublishes(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.AsAdmin(testutil.NewFormRequest("/settings", url.Values{
		"site_name":   {"OSIS SMA Harapan"},
		"school_name": {"SMA Harapan Bangsa"},
		"instagram":   {"@osisharapan"},
		"footer_md":   {"Bersatu **berkarya**"},
	}))
	rec := serve(t, h.HandleSettings, req)
	rec.AssertRedirect(t, "/settings?notice=saved")

	s, err := h.Settings.Get(ctx, "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.SiteName != "OSIS SMA Harapan" || s.Instagram != "osisharapan" || s.UpdatedByName != "Test Admin" {
		t.Errorf("stored = %+v", s)
	}

	site := viewdata.CurrentSite()
	if site.Name != "OSIS SMA Harapan" {
		t.Errorf("published name = %q", site.Name)
	}
	if !bytes.Contains([]byte(site.Footer), []byte("<strong>berkarya</strong>")) {
		t.Errorf("footer = %q", site.Footer)
	}
}

func TestHandleSettings_RequiresName(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.AsAdmin(testutil.NewFormRequest("/settings", url.Values{"site_name": {"  "}}))
	rec := serve(t, h.HandleSettings, req)
	if rec.Code == http.StatusSeeOther {
		t.Fatal("blank name should re-render, not redirect")
	}
	if ok, _ := h.Settings.Exists(ctx); ok {
		t.Error("nothing should be saved")
	}
}

func TestHandleSettings_LogoReplaced(t *testing.T) {
	h, root := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	upload := func() {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		mw.WriteField("site_name", "OSIS")
		fw, _ := mw.CreateFormFile("logo", "logo.png")
		png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 16, 16)))
		mw.Close()
		req := httptest.NewRequest(http.MethodPost, "/settings", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		serve(t, h.HandleSettings, testutil.AsAdmin(req)).AssertStatus(t, http.StatusSeeOther)
	}

	upload()
	first, _ := h.Settings.Get(ctx, "")
	if !first.HasLogo() {
		t.Fatal("logo not recorded")
	}
	upload()
	second, _ := h.Settings.Get(ctx, "")
	if second.LogoPath == first.LogoPath {
		t.Fatal("logo not replaced")
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(first.LogoPath))); !os.IsNotExist(err) {
		t.Errorf("old logo should be removed, stat err = %v", err)
	}
	if viewdata.CurrentSite().LogoURL != second.LogoURL {
		t.Errorf("layout logo = %q", viewdata.CurrentSite().LogoURL)
	}

	rec := serve(t, h.HandleLogoDelete, testutil.AsAdmin(testutil.NewFormRequest("/settings/logo/delete", nil)))
	rec.AssertRedirect(t, "/settings?notice=logo_off")
	after, _ := h.Settings.Get(ctx, "")
	if after.HasLogo() {
		t.Error("logo should be cleared")
	}
}

func TestToSite(t *testing.T) {
	st := settings.ToSite(models.SiteSettings{SiteName: "OSIS", Instagram: "osis"})
	if st.Name != "OSIS" || st.Instagram != "osis" || st.Footer != "" {
		t.Errorf("ToSite = %+v", st)
	}
}
