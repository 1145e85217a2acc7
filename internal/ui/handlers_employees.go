package ui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"mini-admin/internal/domain"
)

func employeesURL(q domain.EmployeeQuery) string {
	if enc := q.Values().Encode(); enc != "" {
		return "/ui/employees?" + enc
	}
	return "/ui/employees"
}

func withReturn(path, ret string) string {
	return path + "?" + url.Values{"return": {ret}}.Encode()
}

func employeeInputFromForm(values url.Values) domain.EmployeeInput {
	role := formString(values, "role")
	if parsed, ok := domain.ParseRole(role); ok {
		role = string(parsed)
	}
	return domain.EmployeeInput{
		Name:   formString(values, "name"),
		Email:  formString(values, "email"),
		Role:   domain.Role(role),
		Status: domain.EmployeeStatus(strings.ToLower(formString(values, "status"))),
	}
}

func (h *Handler) EmployeesList(w http.ResponseWriter, r *http.Request) {
	q := domain.ParseEmployeeQuery(r.URL.Query())
	page, err := h.Employees.List(r.Context(), q)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	// A delete or a narrower filter can leave the page past the end.
	if pages := q.TotalPages(page.Total); q.Page > pages {
		http.Redirect(w, r, employeesURL(q.WithPage(pages)), http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, employeesListPage(h.page(w, r), q, page))
}

func (h *Handler) EmployeesNew(w http.ResponseWriter, r *http.Request) {
	ret := safeReturn(r.URL.Query().Get("return"), "/ui/employees")
	renderHTML(w, http.StatusOK, employeeFormPage(h.page(w, r), nil, ret))
}

func (h *Handler) EmployeesCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(h, w, r) {
		return
	}
	ret := safeReturn(formString(r.Form, "return"), "/ui/employees")
	created, err := h.Employees.Create(r.Context(), employeeInputFromForm(r.Form))
	if err != nil {
		h.failAndRedirect(w, r, ret, err)
		return
	}
	h.setFlash(w, flashSuccess, h.translator()("employees.saved", "name", created.Name))
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

func (h *Handler) EmployeesEdit(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	e, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	ret := safeReturn(r.URL.Query().Get("return"), "/ui/employees")
	renderHTML(w, http.StatusOK, employeeFormPage(h.page(w, r), e, ret))
}

func (h *Handler) EmployeesUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if !parseFormOrRenderBadRequest(h, w, r) {
		return
	}
	ret := safeReturn(formString(r.Form, "return"), "/ui/employees")
	updated, err := h.Employees.Update(r.Context(), id, employeeInputFromForm(r.Form))
	if err != nil {
		h.failAndRedirect(w, r, ret, err)
		return
	}
	h.setFlash(w, flashSuccess, h.translator()("employees.updated", "name", updated.Name))
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

func (h *Handler) EmployeesDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	e, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	pc := h.page(w, r)
	ret := safeReturn(r.URL.Query().Get("return"), "/ui/employees")
	renderHTML(w, http.StatusOK, confirmPage(pc, "employees",
		pc.T("employees.deleteConfirm", "name", e.Name),
		"/ui/employees/"+domain.FormatID(id)+"/delete", ret,
		hiddenField("return", ret),
	))
}

func (h *Handler) EmployeesDelete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "employeeID"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if !parseFormOrRenderBadRequest(h, w, r) {
		return
	}
	ret := safeReturn(formString(r.Form, "return"), "/ui/employees")

	name := domain.FormatID(id)
	if e, err := h.Employees.Get(r.Context(), id); err == nil {
		name = e.Name
	}
	if err := h.Employees.Delete(r.Context(), id); err != nil {
		h.failAndRedirect(w, r, ret, err)
		return
	}
	h.setFlash(w, flashSuccess, h.translator()("employees.deleted", "name", name))
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
