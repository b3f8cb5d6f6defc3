package migrate

import (
	"context"
	"fmt"

	"github.com/servicenest/checkout-engine/pkg/config"
	"github.com/servicenest/checkout-engine/pkg/db"
	"github.com/servicenest/checkout-engine/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !ShouldAutoRun(cfg) {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "migrations.autorun_started")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "migrations.autorun_completed")
	return nil
}

// ShouldAutoRun reports whether the API should migrate on boot.
func ShouldAutoRun(cfg *config.Config) bool {
	return cfg != nil && cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate
}
