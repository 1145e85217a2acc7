// Package settings holds the process-wide UI settings (theme and language)
// shared by every page.
package settings

import (
	"strings"
	"sync"

	"mini-admin/internal/domain"
	"mini-admin/internal/i18n"
)

// Theme is the UI color theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme normalizes s. ok is false for unknown input.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return ThemeLight, false
}

// Settings is a snapshot of the shared settings.
type Settings struct {
	Theme    Theme
	Language i18n.Lang
}

// Store is the single shared settings holder. Updates apply synchronously
// and are visible to every reader as soon as the setter returns.
type Store struct {
	mu       sync.RWMutex
	current  Settings
	seeded   bool
	nextID   int
	watchers map[int]func(Settings)
}

// NewStore creates a store with the given initial settings.
func NewStore(initial Settings) *Store {
	if initial.Theme == "" {
		initial.Theme = ThemeLight
	}
	if initial.Language == "" {
		initial.Language = i18n.Default
	}
	return &Store{current: initial, watchers: map[int]func(Settings){}}
}

// Get returns the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetTheme updates the theme. Unknown values are rejected.
func (s *Store) SetTheme(raw string) error {
	theme, ok := ParseTheme(raw)
	if !ok {
		return domain.ErrValidation("unknown theme %q", raw)
	}
	s.update(func(cur *Settings, _ bool) bool {
		cur.Theme = theme
		return true
	})
	return nil
}

// SetLanguage updates the language. Unknown values are rejected.
func (s *Store) SetLanguage(raw string) error {
	lang, ok := i18n.Parse(raw)
	if !ok {
		return domain.ErrValidation("unknown language %q", raw)
	}
	s.update(func(cur *Settings, _ bool) bool {
		cur.Language = lang
		return true
	})
	return nil
}

// SeedLanguage sets the language once, unless a language was already chosen
// explicitly. Used to adopt the first visitor's browser language.
func (s *Store) SeedLanguage(lang i18n.Lang) {
	s.update(func(cur *Settings, seeded bool) bool {
		if seeded {
			return false
		}
		cur.Language = lang
		return true
	})
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Settings)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// update applies a change under the lock. apply sees whether any change
// happened before and reports whether it changed anything; watchers run only
// for real changes.
func (s *Store) update(apply func(cur *Settings, seeded bool) bool) {
	s.mu.Lock()
	if !apply(&s.current, s.seeded) {
		s.mu.Unlock()
		return
	}
	s.seeded = true
	snapshot := s.current
	watchers := make([]func(Settings), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(snapshot)
	}
}
