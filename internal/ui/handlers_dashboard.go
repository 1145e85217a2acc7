package ui

import "net/http"

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Dashboard.Summary(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, dashboardPage(h.page(w, r), summary))
}
