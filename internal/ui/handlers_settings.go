package ui

import (
	"net/http"
)

func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, settingsPage(h.page(w, r)))
}

// SettingsUpdate applies whichever of theme and language the form carries
// and returns to the page the form was posted from.
func (h *Handler) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(h, w, r) {
		return
	}
	target := safeReturn(formString(r.Form, "return"), "/ui/settings")

	if theme := formString(r.Form, "theme"); theme != "" {
		if err := h.Settings.SetTheme(theme); err != nil {
			h.failAndRedirect(w, r, target, err)
			return
		}
	}
	if lang := formString(r.Form, "language"); lang != "" {
		if err := h.Settings.SetLanguage(lang); err != nil {
			h.failAndRedirect(w, r, target, err)
			return
		}
	}
	h.logger().InfoContext(r.Context(), "settings updated",
		"theme", h.Settings.Get().Theme, "language", h.Settings.Get().Language)

	if target == "/ui/settings" {
		h.setFlash(w, flashSuccess, h.translator()("settings.saved"))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
