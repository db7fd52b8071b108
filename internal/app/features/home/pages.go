package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.loadHome(ctx)
	if err != nil {
		h.serverError(w, r, "load home failed", err)
		return
	}
	templates.Render(w, r, "home", struct {
		viewdata.BaseVM
		homeView
	}{viewdata.NewBaseVM(r, "Beranda", "/"), v})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /struktur                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeStructure(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.loadStructure(ctx)
	if err != nil {
		h.serverError(w, r, "load structure failed", err)
		return
	}
	templates.Render(w, r, "home_structure", struct {
		viewdata.BaseVM
		structureView
	}{viewdata.NewBaseVM(r, "Struktur Organisasi", "/"), v})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /program?status=                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePrograms(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.loadPrograms(ctx, query.Get(r, "status"))
	if err != nil {
		h.serverError(w, r, "load programs failed", err)
		return
	}
	templates.Render(w, r, "home_programs", struct {
		viewdata.BaseVM
		programsView
	}{viewdata.NewBaseVM(r, "Program Kerja", "/"), v})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /visi-misi, GET /tentang                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePage returns a handler rendering every block of the content page key.
func (h *Handler) ServePage(key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		defer cancel()

		v, err := h.loadPage(ctx, key)
		if err != nil {
			h.serverError(w, r, "load page failed", err)
			return
		}
		templates.Render(w, r, "home_page", struct {
			viewdata.BaseVM
			pageView
		}{viewdata.NewBaseVM(r, v.Page.Name, "/"), v})
	}
}
