// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	settingsfeature "github.com/osishub/osishub/internal/app/features/settings"
	"github.com/osishub/osishub/internal/app/resources"
	settingsstore "github.com/osishub/osishub/internal/app/store/settings"
	userstore "github.com/osishub/osishub/internal/app/store/users"
	"github.com/osishub/osishub/internal/app/system/timeouts"
	"github.com/osishub/osishub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv("OSISHUB"); n > 0 {
		logger.Info("handler timeouts configured from env", zap.Int("count", n))
	}
	viewdata.Init(appCfg.SiteName)
	resources.LoadSharedTemplates()

	if err := ensureAdmin(ctx, deps, appCfg.AdminLoginID, appCfg.AdminPassword, logger); err != nil {
		return err
	}

	// A saved site profile overrides the configured name.
	if err := settingsfeature.LoadSite(ctx, settingsstore.New(deps.MongoDatabase)); err != nil {
		logger.Warn("site profile not loaded; using configured site name", zap.Error(err))
	}
	return nil
}

// ensureAdmin seeds the bootstrap admin account. A blank password skips
// seeding; an existing account is never modified.
func ensureAdmin(ctx context.Context, deps DBDeps, loginID, password string, logger *zap.Logger) error {
	if loginID == "" || password == "" {
		return nil
	}
	created, err := userstore.New(deps.MongoDatabase).EnsureAdmin(ctx, loginID, password, "")
	if err != nil {
		logger.Error("admin seeding failed", zap.String("login_id", loginID), zap.Error(err))
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Info("admin account created", zap.String("login_id", loginID))
	}
	return nil
}
