// internal/app/features/periods/routes.go
package periods

import (
	"github.com/go-chi/chi/v5"
	"github.com/osishub/osishub/internal/app/system/auth"
	"github.com/osishub/osishub/internal/domain/models"
)

// Routes mounts the period routes under the base path
// (typically "/periods" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)

		// CREATE
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		// WIZARD: period plus its starting divisions
		pr.Get("/wizard", h.ServeWizard)
		pr.Post("/wizard", h.HandleWizard)

		// EDIT
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		// ACTIVATE / DELETE
		pr.Post("/{id}/activate", h.HandleActivate)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
