// internal/app/features/contents/reorder.go
package contents

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	shared "github.com/osishub/osishub/internal/app/features/shared/views"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/reorder"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

func (h *Handler) pageItems(ctx context.Context, page string) ([]reorder.Item, error) {
	blocks, err := h.Contents.ListByPage(ctx, page)
	if err != nil {
		return nil, err
	}
	items := make([]reorder.Item, len(blocks))
	for i, c := range blocks {
		items[i] = reorder.Item{ID: c.ID.Hex(), Label: c.Title, Rank: c.Rank}
	}
	return items, nil
}

func (h *Handler) reorderData(r *http.Request, page string, l *reorder.List) shared.ReorderData {
	return shared.ReorderData{
		BaseVM:     viewdata.NewBaseVM(r, "Urutkan Konten", "/contents?page="+page),
		Heading:    "Urutkan Konten: " + pageName(page),
		Action:     "/contents/reorder",
		ScopeName:  "page",
		ScopeValue: page,
		Rows:       shared.ReorderRows(l),
	}
}

// ServeReorder opens the reorder surface for one page from the stored ranks.
//
// Route: GET /contents/reorder?page=
func (h *Handler) ServeReorder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := pickPage(query.Get(r, "page"))
	items, err := h.pageItems(ctx, page)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load contents for reorder failed", err, "Daftar konten tidak dapat dimuat.", "/contents")
		return
	}
	templates.Render(w, r, "reorder_page", h.reorderData(r, page, reorder.New(items)))
}

// HandleReorderMove applies one move to the submitted order. Nothing is
// written.
//
// Route: POST /contents/reorder/move?index=&dir=
func (h *Handler) HandleReorderMove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.HTMXLogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/contents")
		return
	}
	mv, ok := shared.ParseReorderMove(r)
	if !ok {
		uierrors.RenderBadRequest(w, r, "Perpindahan tidak valid.", "/contents")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := pickPage(r.FormValue("page"))
	items, err := h.pageItems(ctx, page)
	if err != nil {
		h.ErrLog.HTMXLogServerError(w, r, "load contents for reorder failed", err, "Daftar konten tidak dapat dimuat.", "/contents")
		return
	}

	l := reorder.FromIDs(mv.Order, items)
	l.Move(mv.Index, mv.Dir)

	data := h.reorderData(r, page, l)
	if r.Header.Get("HX-Request") != "" {
		templates.Render(w, r, "reorder_list", data)
		return
	}
	templates.Render(w, r, "reorder_page", data)
}

// HandleReorderCommit writes rank = position for every block of the page,
// in order. Rank 1 of the home page becomes the hero.
//
// Route: POST /contents/reorder
func (h *Handler) HandleReorderCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/contents")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	page := pickPage(r.FormValue("page"))
	items, err := h.pageItems(ctx, page)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load contents for reorder failed", err, "Daftar konten tidak dapat dimuat.", "/contents")
		return
	}

	l := reorder.FromIDs(shared.ParseReorderOrder(r), items)
	if err := l.Commit(ctx, h.Contents); err != nil {
		var ce *reorder.CommitError
		if errors.As(err, &ce) {
			h.Log.Error("content reorder stopped",
				zap.String("page", page),
				zap.String("content_id", ce.Item.ID),
				zap.Int("written", ce.Written),
				zap.Error(ce.Err))
			uierrors.RenderServerError(w, r,
				"Urutan gagal disimpan pada konten \""+ce.Item.Label+"\". Sebagian urutan baru sudah tersimpan; buka kembali halaman urutan untuk mencoba lagi.",
				"/contents/reorder?page="+page)
			return
		}
		h.ErrLog.LogServerError(w, r, "content reorder failed", err, "Urutan gagal disimpan.", "/contents")
		return
	}

	h.Log.Info("contents reordered", zap.String("page", page), zap.Int("count", l.Len()))
	h.Audit.Admin(ctx, r, audit.EventContentsReordered, map[string]string{"page": page})
	http.Redirect(w, r, formutil.WithNotice("/contents?page="+page, "reordered"), http.StatusSeeOther)
}
