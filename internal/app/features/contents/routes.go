// internal/app/features/contents/routes.go
package contents

import (
	"github.com/go-chi/chi/v5"
	"github.com/osishub/osishub/internal/app/system/auth"
	"github.com/osishub/osishub/internal/domain/models"
)

// Routes mounts the page content routes under "/contents".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)

		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Post("/preview", h.HandlePreview)

		pr.Get("/reorder", h.ServeReorder)
		pr.Post("/reorder/move", h.HandleReorderMove)
		pr.Post("/reorder", h.HandleReorderCommit)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/image/delete", h.HandleImageDelete)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
