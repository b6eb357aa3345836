// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/resources"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the API
// client is connected but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("handler timeouts configured from environment", zap.Int("overrides", n))
	}
	return nil
}
