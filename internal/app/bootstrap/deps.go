// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"

	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/backend"
	"github.com/Efemena-10Alytics/Open-Programmes-Admin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Deps holds backend dependencies for the app. The dashboard owns no
// database; its one backend is the platform REST API.
type Deps struct {
	API *backend.Client
}

// Connect builds the platform API client and verifies the API is
// reachable. An unreachable API is logged but does not abort startup:
// the dashboard can come up first and surface fetch errors per page
// until the API returns.
func Connect(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	api, err := backend.New(appCfg.APIBaseURL, appCfg.APITimeout, logger)
	if err != nil {
		return Deps{}, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := api.Ping(pingCtx); err != nil {
		logger.Warn("platform API unreachable at startup",
			zap.String("base_url", appCfg.APIBaseURL),
			zap.Error(err))
	} else {
		logger.Info("platform API reachable", zap.String("base_url", appCfg.APIBaseURL))
	}

	return Deps{API: api}, nil
}

// EnsureSchema is part of the WAFFLE lifecycle. All persistence lives
// behind the platform API, so there is no schema to set up here.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
