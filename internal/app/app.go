// Package app wires configuration, the data server client, services and the
// web console into runnable HTTP handlers.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"

	"mini-admin/internal/config"
	"mini-admin/internal/i18n"
	"mini-admin/internal/middleware"
	"mini-admin/internal/querycache"
	"mini-admin/internal/restclient"
	"mini-admin/internal/service/assignment"
	"mini-admin/internal/service/dashboard"
	"mini-admin/internal/service/employee"
	"mini-admin/internal/service/training"
	"mini-admin/internal/settings"
	"mini-admin/internal/ui"
)

// Deps holds what main() must provide.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
	// Transport overrides the HTTP transport used to reach the data server.
	Transport http.RoundTripper
}

// Services groups the domain services behind the console.
type Services struct {
	Employee   *employee.Service
	Training   *training.Service
	Assignment *assignment.Service
	Dashboard  *dashboard.Service
}

// App is the fully wired console.
type App struct {
	Services Services
	Settings *settings.Store
	Cache    *querycache.Cache
	Handler  *ui.Handler

	sweeper *cron.Cron
}

// New wires the client, cache, services and UI handler from deps. Call
// Close when done to stop the cache sweeper.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := restclient.New(restclient.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RetryMax:  cfg.API.RetryMax,
		Logger:    logger.With("component", "restclient"),
		Transport: deps.Transport,
	})

	cache := querycache.New(cfg.Cache.TTL)
	var sweeper *cron.Cron
	if cfg.Cache.TTL > 0 && cfg.Cache.SweepSchedule != "" {
		s, err := querycache.StartSweeper(cache, cfg.Cache.SweepSchedule, logger.With("component", "querycache"))
		if err != nil {
			return nil, fmt.Errorf("cache sweeper: %w", err)
		}
		sweeper = s
	}

	employeeSvc := employee.NewService(client.Employees(), cache, logger.With("component", "employees"))
	trainingSvc := training.NewService(client.Trainings(), cache)
	assignmentSvc := assignment.NewService(client.Assignments(), employeeSvc, trainingSvc, cache, logger.With("component", "assignments"))
	dashboardSvc := dashboard.NewService(employeeSvc, trainingSvc, assignmentSvc)

	store := settings.NewStore(initialSettings(cfg.Settings))
	store.Subscribe(func(s settings.Settings) {
		logger.Info("settings changed", "theme", s.Theme, "language", s.Language)
	})

	handler := ui.NewHandler(
		employeeSvc, trainingSvc, assignmentSvc, dashboardSvc,
		store, logger.With("component", "ui"),
		cfg.Settings.DetectLanguage, cfg.IsProduction(),
	)

	return &App{
		Services: Services{
			Employee:   employeeSvc,
			Training:   trainingSvc,
			Assignment: assignmentSvc,
			Dashboard:  dashboardSvc,
		},
		Settings: store,
		Cache:    cache,
		Handler:  handler,
		sweeper:  sweeper,
	}, nil
}

// Router returns the console's HTTP handler. The root path redirects to
// the dashboard.
func (a *App) Router(logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/ui", func(r chi.Router) {
		ui.MountRoutes(r, a.Handler)
	})
	return r
}

// Close stops background work.
func (a *App) Close() {
	if a.sweeper != nil {
		<-a.sweeper.Stop().Done()
	}
}

func initialSettings(c config.SettingsConfig) settings.Settings {
	theme, _ := settings.ParseTheme(c.DefaultTheme)
	lang, ok := i18n.Parse(c.DefaultLanguage)
	if !ok {
		lang = i18n.Default
	}
	return settings.Settings{Theme: theme, Language: lang}
}
