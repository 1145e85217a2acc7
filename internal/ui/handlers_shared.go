package ui

import (
	"errors"
	"net/http"

	"mini-admin/internal/domain"
)

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	t := h.translator()
	status := http.StatusInternalServerError
	title := t("common.errorTitle")
	message := t("common.error")

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var upstream *domain.UpstreamError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		message = t("common.notFound")
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		message = validation.Error()
	case errors.As(err, &conflict):
		status = http.StatusConflict
		message = conflict.Error()
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "ui request failed", "path", r.URL.Path, "error", err)
	}
	renderHTML(w, status, errorPage(h.basePage(r), title, message))
}

// failAndRedirect reports err as a toast on the page at target. Mutations
// use it so a failed write lands the user back where they were.
func (h *Handler) failAndRedirect(w http.ResponseWriter, r *http.Request, target string, err error) {
	h.logger().WarnContext(r.Context(), "ui mutation failed", "path", r.URL.Path, "error", err)
	msg := h.translator()("common.error")
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		msg = validation.Error()
	}
	h.setFlash(w, flashError, msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseFormOrRenderBadRequest(h *Handler, w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.renderServiceError(w, r, domain.ErrValidation("invalid form body"))
		return false
	}
	return true
}
