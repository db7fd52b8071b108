// internal/app/features/errors/render.go
package errors

import (
	"net/http"
)

// RenderUnauthorized shows the "sign in required" page.
// If backURL is empty, it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	render(w, r, http.StatusUnauthorized, "Perlu masuk", "Silakan masuk untuk melanjutkan.", backURL)
}

// RenderForbidden shows the access-denied page with msg.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Anda tidak memiliki akses ke halaman ini."
	}
	render(w, r, http.StatusForbidden, "Akses ditolak", msg, backURL)
}

// RenderNotFound shows the not-found page with msg.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Halaman yang Anda cari tidak ditemukan."
	}
	render(w, r, http.StatusNotFound, "Tidak ditemukan", msg, backURL)
}

// RenderBadRequest shows the invalid-request page with msg.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Permintaan tidak valid."
	}
	render(w, r, http.StatusBadRequest, "Permintaan tidak valid", msg, backURL)
}

// RenderServerError shows the generic failure page with msg.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Terjadi kesalahan. Silakan coba lagi."
	}
	render(w, r, http.StatusInternalServerError, "Terjadi kesalahan", msg, backURL)
}
