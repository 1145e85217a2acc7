package ui

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const flashCookieName = "ui_flash"

type flashTone string

const (
	flashSuccess flashTone = "success"
	flashError   flashTone = "danger"
	flashWarning flashTone = "attention"
)

// flashMessage is a one-shot toast shown on the next rendered page.
type flashMessage struct {
	Tone    flashTone
	Message string
}

func (h *Handler) setFlash(w http.ResponseWriter, tone flashTone, message string) {
	http.SetCookie(w, h.consoleCookie(flashCookieName, url.QueryEscape(string(tone)+"|"+message)))
}

// popFlash reads the pending flash message and clears the cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *flashMessage {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	tone, msg, ok := strings.Cut(raw, "|")
	if !ok || msg == "" {
		return nil
	}
	switch flashTone(tone) {
	case flashSuccess, flashError, flashWarning:
	default:
		tone = string(flashSuccess)
	}
	return &flashMessage{Tone: flashTone(tone), Message: msg}
}
