// Package providers wires Reelhouse components into the samber/do injector.
// Each Provide function builds one component from the components it needs;
// handles with a Shutdown method are closed by the injector in reverse order.
package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/reelhouse/reelhouse-server/internal/config"
	"github.com/reelhouse/reelhouse-server/internal/logger"
)

// ProvideConfig loads and validates flags, environment and .env settings.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// ProvideLogger builds the process logger and records the settings that
// shape feed and recommendation behavior.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Reelhouse starting",
		"environment", cfg.App.Environment,
		"data_path", cfg.Data.BasePath,
		"feed_limit", cfg.Feed.DefaultLimit,
		"feed_max_limit", cfg.Feed.MaxLimit,
		"recommend_mark_sampled", cfg.Recommend.MarkSampled,
		"stats_cache", cfg.Cache.Enabled,
	)

	return log, nil
}
