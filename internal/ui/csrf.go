package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	csrfCookieName = "ui_csrf"
	csrfFormField  = "csrf_token"
)

type csrfTokenKey struct{}

// IssueCSRFToken makes sure every console visitor carries a form token
// cookie and exposes the token to page rendering.
func (h *Handler) IssueCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookie(r)
		if token == "" {
			token = rand.Text()
			http.SetCookie(w, h.consoleCookie(csrfCookieName, token))
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfTokenKey{}, token)))
	})
}

// RequireCSRF guards the console's form posts (employee, assignment and
// settings changes). The posted csrf_token field must equal the cookie.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		reason := "csrf.invalid"
		cookie := csrfCookie(r)
		if cookie == "" {
			reason = "csrf.missing"
		} else if err := r.ParseForm(); err == nil &&
			subtle.ConstantTimeCompare([]byte(cookie), []byte(r.PostForm.Get(csrfFormField))) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		h.logger().WarnContext(r.Context(), "console form rejected", "path", r.URL.Path, "reason", reason)
		t := h.translator()
		renderHTML(w, http.StatusForbidden, errorPage(h.basePage(r), t("csrf.title"), t(reason)))
	})
}

// csrfToken returns the token issued for r, falling back to the cookie for
// requests that did not pass through IssueCSRFToken.
func csrfToken(r *http.Request) string {
	if token, ok := r.Context().Value(csrfTokenKey{}).(string); ok {
		return token
	}
	return csrfCookie(r)
}

func csrfCookie(r *http.Request) string {
	c, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// csrfInput is the hidden field every console form carries.
func (pc pageContext) csrfInput() Node {
	return Input(Type("hidden"), Name(csrfFormField), Value(pc.CSRFToken))
}
