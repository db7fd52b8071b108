// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string admins type to sign in

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	uierrors "github.com/osishub/osishub/internal/app/features/errors"
	"github.com/osishub/osishub/internal/app/store/audit"
	userstore "github.com/osishub/osishub/internal/app/store/users"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"github.com/osishub/osishub/internal/app/system/auth"
	"github.com/osishub/osishub/internal/app/system/ratelimit"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultLanding is where a successful sign-in goes without a return URL.
const DefaultLanding = "/dashboard"

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Audit      *auditlog.Logger
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	LoginID   string
	ReturnURL string
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.NewLoginLimiter()
	}
	return &Handler{
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		ErrLog:     errLog,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if h.SessionMgr.IsAuthenticated(r) {
		http.Redirect(w, r, urlutil.SafeReturn(query.Get(r, "return"), "", DefaultLanding), http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Masuk", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/login")
		return
	}

	loginID := strings.TrimSpace(r.FormValue("login_id"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if loginID == "" || password == "" {
		h.renderFormWithError(w, r, "Masukkan ID login dan kata sandi.", loginID, ret)
		return
	}

	if ok, reason := h.Limiter.Check(r, loginID); !ok {
		h.Log.Warn("login rate limited", zap.String("login_id", loginID), zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginFailed(r.Context(), r, audit.EventLoginFailedRateLimit, loginID, reason)
		h.renderFormWithError(w, r, reason, loginID, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, loginID, password)
	switch {
	case errors.Is(err, userstore.ErrInvalidCredentials):
		h.Log.Info("login failed", zap.String("login_id", loginID))
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedWrongPassword, loginID, "invalid credentials")
		h.renderFormWithError(w, r, "ID login atau kata sandi salah.", loginID, ret)
		return
	case errors.Is(err, userstore.ErrDisabled):
		h.Log.Info("login refused: account disabled", zap.String("login_id", loginID))
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserDisabled, loginID, "account disabled")
		h.renderFormWithError(w, r, "Akun Anda dinonaktifkan. Hubungi administrator.", loginID, ret)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "authenticate failed", err, "Terjadi kesalahan server.", "/login")
		return
	}

	h.Limiter.ResetAccount(loginID)

	su := auth.SessionUser{
		ID:      u.ID.Hex(),
		Name:    u.FullName,
		LoginID: u.LoginID,
		Role:    u.Role,
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Gagal membuat sesi.", "/login")
		return
	}
	h.Audit.LoginSuccess(ctx, r, u.ID, u.LoginID)

	http.Redirect(w, r, urlutil.SafeReturn(ret, "", DefaultLanding), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, loginID, ret string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Masuk", "/"),
		Error:     msg,
		LoginID:   loginID,
		ReturnURL: ret,
	})
}
