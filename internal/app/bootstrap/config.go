// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/osishub/osishub/internal/app/system/auditlog"
	"github.com/osishub/osishub/internal/app/system/imageproc"
	"github.com/osishub/osishub/internal/domain/models"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for OSISHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: OSISHUB_MONGO_URI, OSISHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "osishub", Desc: "MongoDB database name"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "osishub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "168h", Desc: "Session lifetime (e.g., 24h, 168h)"},
	{Name: "csrf_key", Default: "dev-only-csrf-key-change-me-0123", Desc: "CSRF token key (32 bytes)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded images"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local files"},

	// S3 configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "osishub/", Desc: "S3 key prefix"},
	{Name: "storage_s3_public_url", Default: "", Desc: "Public base URL for S3 objects (bucket website or CDN)"},

	// Image compression
	{Name: "image_max_width", Default: imageproc.DefaultMaxWidth, Desc: "Maximum stored image width in pixels"},
	{Name: "image_quality", Default: imageproc.DefaultQuality, Desc: "JPEG quality for stored images (1-100)"},

	// Bootstrap admin
	{Name: "admin_login_id", Default: "admin", Desc: "Login ID of the admin created on startup"},
	{Name: "admin_password", Default: "", Desc: "Password of the admin created on startup (blank skips seeding)"},

	{Name: "site_name", Default: models.DefaultSiteName, Desc: "Site name shown in page headers"},

	// Audit logging
	{Name: "audit_log_auth", Default: auditlog.ModeAll, Desc: "Audit auth events: all, db, log, off"},
	{Name: "audit_log_admin", Default: auditlog.ModeAll, Desc: "Audit admin actions: all, db, log, off"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// OSISHUB_* environment variables and flags with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "OSISHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 7*24*time.Hour),
		CSRFKey:       appValues.String("csrf_key"),

		// File storage
		StorageType:      strings.ToLower(strings.TrimSpace(appValues.String("storage_type"))),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageS3PublicURL: appValues.String("storage_s3_public_url"),

		// Images
		ImageMaxWidth: appValues.Int("image_max_width"),
		ImageQuality:  appValues.Int("image_quality"),

		// Admin
		AdminLoginID:  appValues.String("admin_login_id"),
		AdminPassword: appValues.String("admin_password"),

		SiteName: appValues.String("site_name"),

		// Audit
		AuditLogAuth:  strings.ToLower(strings.TrimSpace(appValues.String("audit_log_auth"))),
		AuditLogAdmin: strings.ToLower(strings.TrimSpace(appValues.String("audit_log_admin"))),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It checks the MongoDB URI format and the storage settings so that
// misconfiguration fails at startup instead of on the first upload.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateStorage(appCfg); err != nil {
		logger.Error("invalid storage configuration", zap.Error(err))
		return err
	}
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if appCfg.ImageQuality < 1 || appCfg.ImageQuality > 100 {
		return fmt.Errorf("image_quality must be between 1 and 100, got %d", appCfg.ImageQuality)
	}
	if appCfg.ImageMaxWidth < 1 {
		return fmt.Errorf("image_max_width must be positive, got %d", appCfg.ImageMaxWidth)
	}
	for key, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch mode {
		case auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
		default:
			return fmt.Errorf("%s must be one of all, db, log, off; got %q", key, mode)
		}
	}
	if appCfg.AdminPassword == "" {
		logger.Warn("admin_password is empty; no admin account will be seeded")
	}
	return nil
}

func validateStorage(appCfg AppConfig) error {
	switch appCfg.StorageType {
	case "local":
		if appCfg.StorageLocalPath == "" {
			return errors.New("storage_local_path is required for local storage")
		}
		if !strings.HasPrefix(appCfg.StorageLocalURL, "/") {
			return errors.New("storage_local_url must start with /")
		}
	case "s3":
		if appCfg.StorageS3Region == "" || appCfg.StorageS3Bucket == "" {
			return errors.New("storage_s3_region and storage_s3_bucket are required for s3 storage")
		}
		if appCfg.StorageS3PublicURL == "" {
			return errors.New("storage_s3_public_url is required for s3 storage")
		}
	default:
		return fmt.Errorf("storage_type must be 'local' or 's3', got %q", appCfg.StorageType)
	}
	return nil
}
