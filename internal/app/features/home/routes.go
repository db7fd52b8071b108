package home

import (
	"github.com/go-chi/chi/v5"
	"github.com/osishub/osishub/internal/domain/models"
)

// Routes mounts the public pages at the site root.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	r.Get("/struktur", h.ServeStructure)
	r.Get("/program", h.ServePrograms)
	r.Get("/visi-misi", h.ServePage(models.PageVisiMisi))
	r.Get("/tentang", h.ServePage(models.PageAbout))
	return r
}
