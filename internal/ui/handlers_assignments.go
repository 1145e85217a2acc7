package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"mini-admin/internal/domain"
)

// assignmentOptions loads the employee and training choices for the
// assignment forms.
func (h *Handler) assignmentOptions(r *http.Request) ([]domain.Employee, []domain.Training, error) {
	var (
		employees []domain.Employee
		trainings []domain.Training
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		employees, err = h.Assignments.Employees(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		trainings, err = h.Assignments.Trainings(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return employees, trainings, nil
}

func (h *Handler) AssignmentsList(w http.ResponseWriter, r *http.Request) {
	views, err := h.Assignments.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, assignmentsListPage(h.page(w, r), views))
}

func (h *Handler) AssignmentsNew(w http.ResponseWriter, r *http.Request) {
	employees, trainings, err := h.assignmentOptions(r)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	preselected, _ := strconv.ParseInt(r.URL.Query().Get("employee"), 10, 64)
	renderHTML(w, http.StatusOK, assignmentNewPage(h.page(w, r), employees, trainings, preselected))
}

// AssignmentsCreate assigns one employee to every selected training.
func (h *Handler) AssignmentsCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(h, w, r) {
		return
	}
	t := h.translator()
	employeeID := formInt64(r.Form, "employee_id")
	created, err := h.Assignments.Assign(r.Context(), employeeID, formInt64s(r.Form, "training_id"))

	var partial *domain.PartialFailureError
	switch {
	case errors.As(err, &partial) && partial.Completed > 0:
		h.logger().WarnContext(r.Context(), "assignment batch incomplete", "error", err)
		h.setFlash(w, flashWarning, t("assignments.partial",
			"completed", strconv.Itoa(partial.Completed), "total", strconv.Itoa(partial.Total)))
		http.Redirect(w, r, "/ui/assignments", http.StatusSeeOther)
		return
	case err != nil:
		h.failAndRedirect(w, r, "/ui/assignments/new", err)
		return
	}

	name := domain.FormatID(employeeID)
	if employees, err := h.Assignments.Employees(r.Context()); err == nil {
		for i := range employees {
			if employees[i].ID == employeeID {
				name = employees[i].Name
				break
			}
		}
	}
	h.setFlash(w, flashSuccess, t("assignments.created", "count", strconv.Itoa(len(created)), "name", name))
	http.Redirect(w, r, "/ui/assignments", http.StatusSeeOther)
}

func (h *Handler) AssignmentsEdit(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "assignmentID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	a, err := h.Assignments.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	employees, trainings, err := h.assignmentOptions(r)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, assignmentEditPage(h.page(w, r), a, employees, trainings))
}

func (h *Handler) AssignmentsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "assignmentID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if !parseFormOrRenderBadRequest(h, w, r) {
		return
	}
	_, err = h.Assignments.Update(r.Context(), id, domain.AssignmentInput{
		EmployeeID: formInt64(r.Form, "employee_id"),
		TrainingID: formInt64(r.Form, "training_id"),
		AssignedAt: formString(r.Form, "assigned_at"),
	})
	if err != nil {
		h.failAndRedirect(w, r, "/ui/assignments/"+domain.FormatID(id)+"/edit", err)
		return
	}
	h.setFlash(w, flashSuccess, h.translator()("assignments.updated"))
	http.Redirect(w, r, "/ui/assignments", http.StatusSeeOther)
}

func (h *Handler) AssignmentsDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "assignmentID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	views, err := h.Assignments.List(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	var view *domain.AssignmentView
	for i := range views {
		if views[i].ID == id {
			view = &views[i]
			break
		}
	}
	if view == nil {
		h.renderServiceError(w, r, domain.ErrNotFound("assignment %d not found", id))
		return
	}
	pc := h.page(w, r)
	renderHTML(w, http.StatusOK, confirmPage(pc, "assignments",
		pc.T("assignments.deleteConfirm", "training", orDash(view.TrainingTitle()), "employee", orDash(view.EmployeeName())),
		"/ui/assignments/"+domain.FormatID(id)+"/delete", "/ui/assignments",
	))
}

func (h *Handler) AssignmentsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "assignmentID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Assignments.Delete(r.Context(), id); err != nil {
		h.failAndRedirect(w, r, "/ui/assignments", err)
		return
	}
	h.setFlash(w, flashSuccess, h.translator()("assignments.deleted"))
	http.Redirect(w, r, "/ui/assignments", http.StatusSeeOther)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
