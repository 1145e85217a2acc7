package ui

import (
	"log/slog"
	"net/http"

	"mini-admin/internal/i18n"
	"mini-admin/internal/service/assignment"
	"mini-admin/internal/service/dashboard"
	"mini-admin/internal/service/employee"
	"mini-admin/internal/service/training"
	"mini-admin/internal/settings"

	gomponents "maragu.dev/gomponents"
)

type Handler struct {
	Employees   *employee.Service
	Trainings   *training.Service
	Assignments *assignment.Service
	Dashboard   *dashboard.Service
	Settings    *settings.Store
	Logger      *slog.Logger
	// DetectLanguage seeds the shared language from the first request's
	// Accept-Language header.
	DetectLanguage bool
	Production     bool
}

func NewHandler(
	employeeSvc *employee.Service,
	trainingSvc *training.Service,
	assignmentSvc *assignment.Service,
	dashboardSvc *dashboard.Service,
	store *settings.Store,
	logger *slog.Logger,
	detectLanguage bool,
	production bool,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Employees:      employeeSvc,
		Trainings:      trainingSvc,
		Assignments:    assignmentSvc,
		Dashboard:      dashboardSvc,
		Settings:       store,
		Logger:         logger,
		DetectLanguage: detectLanguage,
		Production:     production,
	}
}

// pageContext carries what every page needs to render its shell.
type pageContext struct {
	T         i18n.Translator
	Lang      i18n.Lang
	Theme     settings.Theme
	Flash     *flashMessage
	CSRFToken string
	// Path is the current request URI, used as the settings form's return target.
	Path string
}

// page builds the shell context for r and consumes any pending flash message.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) pageContext {
	pc := h.basePage(r)
	pc.Flash = popFlash(w, r)
	return pc
}

// basePage is page without touching the flash cookie.
func (h *Handler) basePage(r *http.Request) pageContext {
	s := h.current()
	return pageContext{
		T:         i18n.For(s.Language),
		Lang:      s.Language,
		Theme:     s.Theme,
		CSRFToken: csrfToken(r),
		Path:      r.URL.RequestURI(),
	}
}

func (h *Handler) current() settings.Settings {
	if h.Settings == nil {
		return settings.Settings{Theme: settings.ThemeLight, Language: i18n.Default}
	}
	return h.Settings.Get()
}

func (h *Handler) translator() i18n.Translator {
	return i18n.For(h.current().Language)
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// SeedLanguage adopts the browser language of the first visitor when
// language detection is enabled. An explicit choice on the settings page
// always wins.
func (h *Handler) SeedLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.DetectLanguage {
			if accept := r.Header.Get("Accept-Language"); accept != "" {
				h.Settings.SeedLanguage(i18n.Detect(accept))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// consoleCookie builds an HttpOnly cookie for the console. Secure is set in
// production.
func (h *Handler) consoleCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteLaxMode,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
