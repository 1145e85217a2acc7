package ui

import (
	"net/http"

	"mini-admin/internal/domain"
)

func (h *Handler) TrainingsList(w http.ResponseWriter, r *http.Request) {
	filter := domain.TrainingFilter{
		Title:  r.URL.Query().Get("title"),
		Status: domain.ParseTrainingStatusFilter(r.URL.Query().Get("status")),
	}
	items, err := h.Trainings.List(r.Context(), filter)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, trainingsListPage(h.page(w, r), filter, items))
}
