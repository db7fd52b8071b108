// internal/app/system/auditlog/logger.go
package auditlog

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string admins type to sign in

import (
	"context"
	"net/http"

	"github.com/osishub/osishub/internal/app/store/audit"
	"github.com/osishub/osishub/internal/app/system/auth"
	"github.com/osishub/osishub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls sign-in and sign-out events.
	Auth string
	// Admin controls destructive or bulk admin actions.
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and zap.
// A nil *Logger is valid and discards everything, so handlers built in
// tests need no audit wiring.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func (l *Logger) mode(category string) string {
	switch category {
	case audit.CategoryAuth:
		return l.config.Auth
	case audit.CategoryAdmin:
		return l.config.Admin
	default:
		return ModeAll
	}
}

// Log records an audit event according to its category's mode. A store
// failure is logged and swallowed; auditing never fails the request.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := l.mode(event.Category)
	if setting == ModeOff {
		return
	}
	if setting == ModeAll || setting == ModeLog || setting == "" {
		l.logToZap(event)
	}
	if setting == ModeAll || setting == ModeDB || setting == "" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func requestEvent(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, loginID string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginSuccess)
	e.UserID = &userID
	e.Details = map[string]string{"login_id": loginID}
	l.Log(ctx, e)
}

// LoginFailed logs a refused sign-in. eventType is one of the
// audit.EventLoginFailed* constants.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, eventType, loginID, reason string) {
	e := requestEvent(r, audit.CategoryAuth, eventType)
	e.Success = false
	e.FailureReason = reason
	e.Details = map[string]string{"attempted_login_id": loginID}
	l.Log(ctx, e)
}

// Logout logs a sign-out by the current user.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLogout)
	withActor(&e, r)
	l.Log(ctx, e)
}

// --- Admin Events ---

// Admin logs an admin action performed by the signed-in user. details
// names the affected records (e.g. "period_id", "name").
func (l *Logger) Admin(ctx context.Context, r *http.Request, eventType string, details map[string]string) {
	e := requestEvent(r, audit.CategoryAdmin, eventType)
	withActor(&e, r)
	e.Details = details
	l.Log(ctx, e)
}

func withActor(e *audit.Event, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return
	}
	if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
		e.UserID = &oid
	}
	e.ActorName = u.Name
}
