package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"mini-admin/internal/config"
	"mini-admin/internal/middleware"
	"mini-admin/internal/mockapi"
)

// NewMockServer opens the data file named by cfg.Mock.DBPath and returns the
// store together with its HTTP handler.
func NewMockServer(cfg *config.Config, logger *slog.Logger) (*mockapi.Store, http.Handler, error) {
	store, err := mockapi.Open(cfg.Mock.DBPath, cfg.Mock.ReadOnly)
	if err != nil {
		return nil, nil, fmt.Errorf("open data file: %w", err)
	}
	logger.Info("data file loaded",
		"path", cfg.Mock.DBPath,
		"collections", store.Collections(),
		"read_only", store.ReadOnly(),
	)
	return store, mockapi.NewRouter(store, mockOptions(cfg, logger)), nil
}

func mockOptions(cfg *config.Config, logger *slog.Logger) mockapi.Options {
	return mockapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		},
		Delay: cfg.Mock.Delay,
	}
}
