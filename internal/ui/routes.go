package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mini-admin/internal/ui/assets"
)

// MountRoutes registers the console under r, which is expected to be
// mounted at /ui.
func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.SeedLanguage)
		r.Use(h.IssueCSRFToken)
		r.Use(h.RequireCSRF)

		r.Get("/", h.Home)

		r.Get("/employees", h.EmployeesList)
		r.Get("/employees/new", h.EmployeesNew)
		r.Post("/employees", h.EmployeesCreate)
		r.Get("/employees/{employeeID}/edit", h.EmployeesEdit)
		r.Post("/employees/{employeeID}", h.EmployeesUpdate)
		r.Get("/employees/{employeeID}/delete", h.EmployeesDeleteConfirm)
		r.Post("/employees/{employeeID}/delete", h.EmployeesDelete)

		r.Get("/trainings", h.TrainingsList)

		r.Get("/assignments", h.AssignmentsList)
		r.Get("/assignments/new", h.AssignmentsNew)
		r.Post("/assignments", h.AssignmentsCreate)
		r.Get("/assignments/{assignmentID}/edit", h.AssignmentsEdit)
		r.Post("/assignments/{assignmentID}", h.AssignmentsUpdate)
		r.Get("/assignments/{assignmentID}/delete", h.AssignmentsDeleteConfirm)
		r.Post("/assignments/{assignmentID}/delete", h.AssignmentsDelete)

		r.Get("/settings", h.SettingsPage)
		r.Post("/settings", h.SettingsUpdate)
	})
}
