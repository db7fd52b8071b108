// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (OSISHUB_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, logging and request limits; everything OSISHub itself
// needs lives here and is passed to the lifecycle hooks.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: osishub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session cookie lifetime

	// CSRF protection
	CSRFKey string // 32-byte key for gorilla/csrf tokens

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "osishub/")
	StorageS3PublicURL string // Public base URL (bucket website or CDN)

	// Image compression applied before upload
	ImageMaxWidth int // Pixels; wider images are scaled down
	ImageQuality  int // JPEG quality 1–100

	// Bootstrap admin, created on startup when missing
	AdminLoginID  string
	AdminPassword string

	// Site name shown in page headers
	SiteName string

	// Audit logging: "all", "db", "log" or "off" per category
	AuditLogAuth  string // sign-in and sign-out events
	AuditLogAdmin string // deletions, activations, reorders and imports
}
