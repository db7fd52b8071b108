// internal/app/features/settings/admin.go
package settings

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/authz"
	"github.com/osishub/osishub/internal/app/system/formutil"
	"github.com/osishub/osishub/internal/app/system/inputval"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"github.com/osishub/osishub/internal/domain/models"
	"go.uber.org/zap"
)

var notices = map[string]string{
	"saved":    "Profil situs tersimpan.",
	"logo_off": "Logo dihapus.",
}

type settingsInput struct {
	SiteName   string `validate:"required,max=80" label:"Nama situs"`
	SchoolName string `validate:"max=120" label:"Nama sekolah"`
	Instagram  string `validate:"max=60" label:"Instagram"`
	FooterMD   string `validate:"max=2000" label:"Catatan kaki"`
}

type settingsVM struct {
	formutil.Base
	Notice string

	SiteName   string
	SchoolName string
	Instagram  string
	FooterMD   string
	LogoURL    string
	UpdatedBy  string
	UpdatedAt  string
}

func readInput(r *http.Request) settingsInput {
	return settingsInput{
		SiteName:   strings.TrimSpace(r.FormValue("site_name")),
		SchoolName: strings.TrimSpace(r.FormValue("school_name")),
		Instagram:  strings.TrimPrefix(strings.TrimSpace(r.FormValue("instagram")), "@"),
		FooterMD:   strings.TrimSpace(r.FormValue("footer_md")),
	}
}

func vmFrom(r *http.Request, s models.SiteSettings) settingsVM {
	vm := settingsVM{
		SiteName:   s.SiteName,
		SchoolName: s.SchoolName,
		Instagram:  s.Instagram,
		FooterMD:   s.FooterMD,
		LogoURL:    s.LogoURL,
		UpdatedBy:  s.UpdatedByName,
	}
	if s.UpdatedAt != nil {
		vm.UpdatedAt = s.UpdatedAt.Local().Format("02 Jan 2006 15:04")
	}
	formutil.SetBase(&vm.Base, r, "Profil Situs", "/dashboard")
	return vm
}

// ServeSettings handles GET /settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	s, err := h.Settings.Get(ctx, h.FallbackName)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Profil situs tidak dapat dimuat.", "/dashboard")
		return
	}
	vm := vmFrom(r, s)
	vm.Notice = formutil.Notice(r, notices)
	templates.Render(w, r, "settings_form", vm)
}

// HandleSettings handles POST /settings. A new logo replaces the old one
// after the text fields are saved.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if err := uploads.ParseForm(w, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid atau berkas terlalu besar.", "/settings")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	current, err := h.Settings.Get(ctx, h.FallbackName)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Profil situs tidak dapat dimuat.", "/settings")
		return
	}

	in := readInput(r)
	renderWithError := func(msg string) {
		vm := vmFrom(r, current)
		vm.SiteName, vm.SchoolName, vm.Instagram, vm.FooterMD = in.SiteName, in.SchoolName, in.Instagram, in.FooterMD
		vm.SetError(msg)
		templates.Render(w, r, "settings_form", vm)
	}

	if result := inputval.Validate(in); result.HasErrors() {
		renderWithError(result.First())
		return
	}

	_, actor, _, _ := authz.UserCtx(r)
	next := models.SiteSettings{
		SiteName:      in.SiteName,
		SchoolName:    in.SchoolName,
		Instagram:     in.Instagram,
		FooterMD:      in.FooterMD,
		LogoURL:       current.LogoURL,
		LogoPath:      current.LogoPath,
		UpdatedByName: actor,
	}
	if err := h.Settings.Save(ctx, next); err != nil {
		h.ErrLog.LogServerError(w, r, "save settings failed", err, "Profil situs gagal disimpan.", "/settings")
		return
	}

	saved, err := h.Images.Save(ctx, r, "logo", "site")
	switch {
	case errors.Is(err, uploads.ErrNoFile):
	case err != nil:
		if msg := uploads.Message(err); msg != "" {
			viewdata.SetSite(ToSite(next))
			current = next
			renderWithError("Profil tersimpan, tetapi logo gagal diunggah: " + msg)
			return
		}
		h.ErrLog.LogServerError(w, r, "store logo failed", err, "Logo gagal diunggah.", "/settings")
		return
	default:
		if err := h.Settings.SetLogo(ctx, saved.URL, saved.Path); err != nil {
			h.Images.Remove(ctx, saved.Path)
			h.ErrLog.LogServerError(w, r, "record logo failed", err, "Logo gagal disimpan.", "/settings")
			return
		}
		h.Images.Remove(ctx, current.LogoPath)
		next.LogoURL, next.LogoPath = saved.URL, saved.Path
	}

	viewdata.SetSite(ToSite(next))
	h.Log.Info("site settings saved", zap.String("site_name", next.SiteName))
	h.Audit.Admin(ctx, r, audit.EventSettingsUpdated, map[string]string{"name": next.SiteName})
	http.Redirect(w, r, formutil.WithNotice("/settings", "saved"), http.StatusSeeOther)
}

// HandleLogoDelete handles POST /settings/logo/delete.
func (h *Handler) HandleLogoDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Settings.Get(ctx, h.FallbackName)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Profil situs tidak dapat dimuat.", "/settings")
		return
	}
	if current.HasLogo() {
		if err := h.Settings.SetLogo(ctx, "", ""); err != nil {
			h.ErrLog.LogServerError(w, r, "clear logo failed", err, "Logo gagal dihapus.", "/settings")
			return
		}
		h.Images.Remove(ctx, current.LogoPath)
		current.LogoURL, current.LogoPath = "", ""
		viewdata.SetSite(ToSite(current))
	}
	http.Redirect(w, r, formutil.WithNotice("/settings", "logo_off"), http.StatusSeeOther)
}
