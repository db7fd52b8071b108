// internal/app/features/contents/list.go
package contents

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/markdown"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
)

var notices = map[string]string{
	"created":   "Konten ditambahkan.",
	"saved":     "Perubahan konten disimpan.",
	"deleted":   "Konten dihapus.",
	"reordered": "Urutan konten disimpan.",
	"image_off": "Gambar konten dihapus.",
}

// ServeList shows the blocks of one page in display order. The first block
// of the home page is marked as the hero.
//
// Route: GET /contents?page=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	page := pickPage(query.Get(r, "page"))

	counts, err := h.Contents.CountByPage(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count contents failed", err, "Daftar konten tidak dapat dimuat.", "/dashboard")
		return
	}
	blocks, err := h.Contents.ListByPage(ctx, page)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list contents failed", err, "Daftar konten tidak dapat dimuat.", "/dashboard")
		return
	}

	data := listData{
		BaseVM:   viewdata.NewBaseVM(r, "Konten Halaman", "/dashboard"),
		Page:     page,
		PageName: pageName(page),
		Flash:    formutil.Notice(r, notices),
	}
	for _, p := range models.Pages {
		data.Tabs = append(data.Tabs, pageTab{Key: p.Key, Name: p.Name, Count: counts[p.Key], Active: p.Key == page})
	}
	for i, c := range blocks {
		data.Items = append(data.Items, listItem{
			PageContent: c,
			Hero:        page == models.PageHome && i == 0,
			Excerpt:     markdown.Excerpt(c.Body, 140),
		})
	}

	templates.Render(w, r, "content_list", data)
}
