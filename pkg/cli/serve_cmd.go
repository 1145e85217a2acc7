package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mini-admin/internal/app"
	"mini-admin/internal/config"
	"mini-admin/internal/logging"
)

// loadServerConfig reads .env (when present) and the environment.
func loadServerConfig(envFile string) (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(os.Stderr, cfg.SlogLevel(), cfg.LogFormat)
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}
	return cfg, logger, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
}

func newServeCmd() *cobra.Command {
	var (
		envFile string
		addr    string
		apiURL  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		Long:  "Run the web console. Configuration comes from the environment and an optional .env file; flags override it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadServerConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.ListenAddr = addr
			}
			if cmd.Flags().Changed("api") {
				cfg.API.BaseURL = apiURL
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			a, err := app.New(app.Deps{Cfg: cfg, Logger: logger})
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			logger.Info("console starting", "addr", cfg.ListenAddr, "data_server", cfg.API.BaseURL, "env", cfg.Env)
			return app.Serve(ctx, cfg.ListenAddr, a.Router(logger), logger)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides LISTEN_ADDR)")
	cmd.Flags().StringVar(&apiURL, "api", "", "Data server base URL (overrides API_BASE_URL)")
	return cmd
}

func newMockServerCmd() *cobra.Command {
	var (
		envFile  string
		addr     string
		dbPath   string
		readOnly bool
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve a JSON data file as a json-server compatible REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadServerConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Mock.ListenAddr = addr
			}
			if cmd.Flags().Changed("db") {
				cfg.Mock.DBPath = dbPath
			}
			if cmd.Flags().Changed("read-only") {
				cfg.Mock.ReadOnly = readOnly
			}

			_, handler, err := app.NewMockServer(cfg, logger)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return app.Serve(ctx, cfg.Mock.ListenAddr, handler, logger)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides MOCK_LISTEN_ADDR)")
	cmd.Flags().StringVar(&dbPath, "db", "", "JSON data file (overrides MOCK_DB_PATH)")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Reject writes with 403")
	return cmd
}
