// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"
	"github.com/osishub/osishub/internal/app/system/auth"
	"github.com/osishub/osishub/internal/domain/models"
)

// Routes mounts all member routes under the path where the caller mounts it.
// Typically: r.Mount("/members", members.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)

		// Dependent selects: Period → Division → Position
		pr.Get("/options", h.ServeOptions)

		// Add / Upload
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/upload_csv", h.ServeUploadCSV)
		pr.Post("/upload_csv", h.HandleUploadCSV)
		pr.Get("/upload_csv/template", h.ServeCSVTemplate)

		// Edit / Delete single member
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/photo/delete", h.HandlePhotoDelete)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
