// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	auditlogfeature "github.com/osishub/osishub/internal/app/features/auditlog"
	contentsfeature "github.com/osishub/osishub/internal/app/features/contents"
	dashboardfeature "github.com/osishub/osishub/internal/app/features/dashboard"
	divisionsfeature "github.com/osishub/osishub/internal/app/features/divisions"
	errorsfeature "github.com/osishub/osishub/internal/app/features/errors"
	healthfeature "github.com/osishub/osishub/internal/app/features/health"
	homefeature "github.com/osishub/osishub/internal/app/features/home"
	loginfeature "github.com/osishub/osishub/internal/app/features/login"
	logoutfeature "github.com/osishub/osishub/internal/app/features/logout"
	membersfeature "github.com/osishub/osishub/internal/app/features/members"
	periodsfeature "github.com/osishub/osishub/internal/app/features/periods"
	positionsfeature "github.com/osishub/osishub/internal/app/features/positions"
	programsfeature "github.com/osishub/osishub/internal/app/features/programs"
	settingsfeature "github.com/osishub/osishub/internal/app/features/settings"
	"github.com/osishub/osishub/internal/app/store/audit"
	userstore "github.com/osishub/osishub/internal/app/store/users"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"github.com/osishub/osishub/internal/app/system/auth"
	"github.com/osishub/osishub/internal/app/system/imageproc"
	"github.com/osishub/osishub/internal/app/system/ratelimit"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/uploads"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. OSISHub boots the template engine, builds
// the session manager and the image store, applies session and CSRF
// middleware, and mounts the public pages and the admin features.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	// Reload the user on each request so disabled accounts take effect
	// immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))
	sessionMgr.OnSessionChange(recordSignIn(userstore.New(db), logger))

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	store, err := newStorage(context.Background(), appCfg)
	if err != nil {
		logger.Error("blob store init failed", zap.String("type", appCfg.StorageType), zap.Error(err))
		return nil, err
	}
	images := uploads.Images{
		Store:   store,
		Options: imageproc.Options{MaxWidth: appCfg.ImageMaxWidth, Quality: appCfg.ImageQuality},
		Log:     logger,
	}

	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// Health check sits outside CSRF and sessions.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.StorageType, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))
	if appCfg.StorageType == "local" {
		prefix := strings.TrimSuffix(appCfg.StorageLocalURL, "/")
		r.Handle(prefix+"/*", fileserver.Handler(prefix, appCfg.StorageLocalPath))
	}

	r.Group(func(app chi.Router) {
		if !secure {
			app.Use(plaintextCSRF)
		}
		app.Use(csrf.Protect([]byte(appCfg.CSRFKey),
			csrf.Secure(secure),
			csrf.Path("/"),
			csrf.ErrorHandler(http.HandlerFunc(errorsHandler.Forbidden)),
		))
		// Loads SessionUser into context if logged in.
		app.Use(sessionMgr.LoadSessionUser)

		// Public pages
		homeHandler := homefeature.NewHandler(db, errLog, logger)
		app.Mount("/", homefeature.Routes(homeHandler))

		// Authentication
		loginHandler := loginfeature.NewHandler(db, sessionMgr, ratelimit.NewLoginLimiter(), errLog, logger)
		loginHandler.Audit = auditLog
		app.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
		logoutHandler.Audit = auditLog
		app.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

		// Error pages
		app.Get("/forbidden", errorsHandler.Forbidden)
		app.Get("/unauthorized", errorsHandler.Unauthorized)

		// Admin
		dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
		app.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
		app.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

		settingsHandler := settingsfeature.NewHandler(db, images, appCfg.SiteName, errLog, logger)
		settingsHandler.Audit = auditLog
		app.Mount("/settings", settingsfeature.Routes(settingsHandler, sessionMgr))

		periodsHandler := periodsfeature.NewHandler(db, errLog, logger)
		periodsHandler.Audit = auditLog
		app.Mount("/periods", periodsfeature.Routes(periodsHandler, sessionMgr))

		divisionsHandler := divisionsfeature.NewHandler(db, images, errLog, logger)
		divisionsHandler.Audit = auditLog
		app.Mount("/divisions", divisionsfeature.Routes(divisionsHandler, sessionMgr))

		positionsHandler := positionsfeature.NewHandler(db, errLog, logger)
		positionsHandler.Audit = auditLog
		app.Mount("/positions", positionsfeature.Routes(positionsHandler, sessionMgr))

		membersHandler := membersfeature.NewHandler(db, images, errLog, logger)
		membersHandler.Audit = auditLog
		app.Mount("/members", membersfeature.Routes(membersHandler, sessionMgr))

		programsHandler := programsfeature.NewHandler(db, errLog, logger)
		programsHandler.Audit = auditLog
		app.Mount("/programs", programsfeature.Routes(programsHandler, sessionMgr))

		contentsHandler := contentsfeature.NewHandler(db, images, errLog, logger)
		contentsHandler.Audit = auditLog
		app.Mount("/contents", contentsfeature.Routes(contentsHandler, sessionMgr))
	})

	r.NotFound(errorsHandler.NotFound)

	return r, nil
}

// plaintextCSRF marks requests as plain HTTP so gorilla/csrf skips the
// HTTPS-only Referer check during local development.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

// recordSignIn stamps last_login_at when an admin signs in.
func recordSignIn(users *userstore.Store, logger *zap.Logger) func(auth.SessionEvent) {
	return func(ev auth.SessionEvent) {
		if ev.Kind != auth.EventSignedIn {
			return
		}
		oid, err := primitive.ObjectIDFromHex(ev.User.ID)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
		defer cancel()
		if err := users.TouchLastLogin(ctx, oid, ev.At); err != nil {
			logger.Warn("record last login failed", zap.String("user_id", ev.User.ID), zap.Error(err))
		}
	}
}
