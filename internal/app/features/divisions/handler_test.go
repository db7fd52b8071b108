package divisions_test

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
	"github.com/osishub/osishub/internal/app/features/divisions"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	divisionstore "github.com/osishub/osishub/internal/app/store/divisions"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"github.com/osishub/osishub/internal/domain/models"
	"github.com/osishub/osishub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*divisions.Handler, *testutil.Fixtures, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	root := t.TempDir()
	store, err := storage.NewLocal(storage.LocalConfig{BasePath: root, BaseURL: "/uploads"})
	if err != nil {
		t.Fatal(err)
	}
	images := uploads.Images{Store: store, Log: logger}
	return divisions.NewHandler(db, images, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db), root
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

func TestHandleCreate_AppendsToPeriod(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)
	fx.CreateDivision(ctx, p.ID, "BPH", models.DivisionTypeCore, 1)

	req := testutil.AsAdmin(testutil.NewFormRequest("/divisions", url.Values{
		"period_id": {p.ID.Hex()},
		"name":      {"Humas"},
		"type":      {models.DivisionTypeGeneral},
		"return":    {"/divisions?period=" + p.ID.Hex()},
	}))
	rec := serve(t, h.HandleCreate, req)
	rec.AssertRedirect(t, "/divisions?period="+p.ID.Hex()+"&notice=created")

	var d models.Division
	if err := fx.DB().Collection("divisions").FindOne(ctx, bson.M{"name": "Humas"}).Decode(&d); err != nil {
		t.Fatalf("division not stored: %v", err)
	}
	if d.Rank != 2 || d.PeriodID != p.ID {
		t.Errorf("rank=%d period=%s, want 2 in %s", d.Rank, d.PeriodID.Hex(), p.ID.Hex())
	}
}

func TestHandleCreate_RejectsBadType(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)
	req := testutil.AsAdmin(testutil.NewFormRequest("/divisions", url.Values{
		"period_id": {p.ID.Hex()},
		"name":      {"Humas"},
		"type":      {"Lainnya"},
	}))
	serve(t, h.HandleCreate, req)

	if n, _ := fx.DB().Collection("divisions").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("expected validation to reject, got %d divisions", n)
	}
}

func TestHandleCreate_WithLogo(t *testing.T) {
	h, fx, root := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("period_id", p.ID.Hex())
	mw.WriteField("name", "Humas")
	mw.WriteField("type", models.DivisionTypeGeneral)
	fw, _ := mw.CreateFormFile("logo", "logo.png")
	png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 20, 20)))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/divisions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := serve(t, h.HandleCreate, testutil.AsAdmin(req))
	rec.AssertStatus(t, http.StatusSeeOther)

	var d models.Division
	if err := fx.DB().Collection("divisions").FindOne(ctx, bson.M{"name": "Humas"}).Decode(&d); err != nil {
		t.Fatalf("division not stored: %v", err)
	}
	if d.LogoPath == "" || d.LogoURL != "/uploads/"+d.LogoPath {
		t.Fatalf("logo not recorded: url=%q path=%q", d.LogoURL, d.LogoPath)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(d.LogoPath))); err != nil {
		t.Errorf("logo file missing: %v", err)
	}
}

func TestHandleDelete_InUse(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)
	d := fx.CreateDivision(ctx, p.ID, "Humas", models.DivisionTypeGeneral, 1)
	fx.CreateMember(ctx, "Ani", d, nil)

	req := testutil.AsAdmin(testutil.NewFormRequest("/divisions/"+d.ID.Hex()+"/delete", url.Values{}))
	req = testutil.WithChiURLParam(req, "id", d.ID.Hex())
	rec := serve(t, h.HandleDelete, req)
	rec.AssertRedirect(t, "/divisions?notice=in_use")

	if n, _ := fx.DB().Collection("divisions").CountDocuments(ctx, bson.M{"_id": d.ID}); n != 1 {
		t.Error("division with members must not be deleted")
	}
}

func TestHandleDelete_Empty(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)
	d := fx.CreateDivision(ctx, p.ID, "Humas", models.DivisionTypeGeneral, 1)

	req := testutil.AsAdmin(testutil.NewFormRequest("/divisions/"+d.ID.Hex()+"/delete", url.Values{
		"period": {p.ID.Hex()},
	}))
	req = testutil.WithChiURLParam(req, "id", d.ID.Hex())
	rec := serve(t, h.HandleDelete, req)
	rec.AssertRedirect(t, "/divisions?period="+p.ID.Hex()+"&notice=deleted")

	if n, _ := fx.DB().Collection("divisions").CountDocuments(ctx, bson.M{"_id": d.ID}); n != 0 {
		t.Error("division should be deleted")
	}
}

func TestHandleReorderMove_DoesNotWrite(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)
	a := fx.CreateDivision(ctx, p.ID, "A", models.DivisionTypeCore, 1)
	b := fx.CreateDivision(ctx, p.ID, "B", models.DivisionTypeGeneral, 2)

	req := testutil.AsAdmin(testutil.NewFormRequest("/divisions/reorder/move?index=1&dir=up", url.Values{
		"period": {p.ID.Hex()},
		"order":  {a.ID.Hex(), b.ID.Hex()},
	}))
	req.Header.Set("HX-Request", "true")
	serve(t, h.HandleReorderMove, req)

	got, err := divisionstore.New(fx.DB()).ListByPeriod(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].ID != a.ID || got[0].Rank != 1 {
		t.Errorf("a move must not persist; first = %s rank %d", got[0].Name, got[0].Rank)
	}
}

// Divisions ranked 5, 7, 9 are committed in a new order and end up 1..3.
func TestHandleReorderCommit_WritesSequentialRanks(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)
	a := fx.CreateDivision(ctx, p.ID, "A", models.DivisionTypeCore, 5)
	b := fx.CreateDivision(ctx, p.ID, "B", models.DivisionTypeGeneral, 7)
	c := fx.CreateDivision(ctx, p.ID, "C", models.DivisionTypeGeneral, 9)

	req := testutil.AsAdmin(testutil.NewFormRequest("/divisions/reorder", url.Values{
		"period": {p.ID.Hex()},
		"order":  {c.ID.Hex(), a.ID.Hex(), b.ID.Hex()},
	}))
	rec := serve(t, h.HandleReorderCommit, req)
	rec.AssertRedirect(t, "/divisions?period="+p.ID.Hex()+"&notice=reordered")

	got, err := divisionstore.New(fx.DB()).ListByPeriod(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"C", "A", "B"}
	for i, d := range got {
		if d.Name != want[i] || d.Rank != i+1 {
			t.Errorf("position %d = %s rank %d, want %s rank %d", i, d.Name, d.Rank, want[i], i+1)
		}
	}
}

// Divisions missing from the submitted order keep their relative order and
// are ranked after the submitted ones.
func TestHandleReorderCommit_MissingIDsGoLast(t *testing.T) {
	h, fx, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fx.CreatePeriod(ctx, "Cakrawala", 2025, true)
	a := fx.CreateDivision(ctx, p.ID, "A", models.DivisionTypeCore, 1)
	fx.CreateDivision(ctx, p.ID, "B", models.DivisionTypeGeneral, 2)
	c := fx.CreateDivision(ctx, p.ID, "C", models.DivisionTypeGeneral, 3)

	req := testutil.AsAdmin(testutil.NewFormRequest("/divisions/reorder", url.Values{
		"period": {p.ID.Hex()},
		"order":  {c.ID.Hex(), a.ID.Hex(), "not-an-id"},
	}))
	serve(t, h.HandleReorderCommit, req)

	got, err := divisionstore.New(fx.DB()).ListByPeriod(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"C", "A", "B"}
	for i, d := range got {
		if d.Name != want[i] || d.Rank != i+1 {
			t.Errorf("position %d = %s rank %d, want %s rank %d", i, d.Name, d.Rank, want[i], i+1)
		}
	}
}
