package preferencestore

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"leaguerats/internal/observer"
	"leaguerats/pkg/errs"
)

// Preference names, shared with the browser cookies.
const (
	ThemeCookie    = "current-theme"
	LanguageCookie = "current-lang"
	AcceptedCookie = "is-accepted-cookies"

	MaxAge = 365 * 24 * time.Hour
)

// Preferences is the per-visitor storage of the selected options.
type Preferences interface {
	Get(name string) (string, bool)
	Set(name string, value string)
	// Accepted reports whether the visitor allowed storing preferences.
	Accepted() bool
}

// Option of a closed set, persisted only with the visitor's consent.
type selection struct {
	cookie   string
	fallback string
	known    []string

	Current *observer.Value[string]
}

func newSelection(topic, cookie, fallback string, known []string, publisher observer.Publisher) *selection {
	return &selection{
		cookie:   cookie,
		fallback: fallback,
		known:    known,
		Current:  observer.NewValue(topic, fallback, observer.WithPublisher(publisher)),
	}
}

func (s *selection) set(prefs Preferences, value string) error {
	if !slices.Contains(s.known, value) {
		return fmt.Errorf("%w: unknown %s %q", errs.ErrInvalidInput, s.cookie, value)
	}

	if prefs != nil && prefs.Accepted() {
		prefs.Set(s.cookie, value)
	}
	s.Current.Set(value)
	return nil
}

// Apply the stored value when allowed and known, the fallback otherwise.
func (s *selection) setDefault(prefs Preferences) string {
	value := s.fallback
	if prefs != nil && prefs.Accepted() {
		if stored, ok := prefs.Get(s.cookie); ok && slices.Contains(s.known, stored) {
			value = stored
		}
	}

	_ = s.set(prefs, value)
	return value
}

// ThemeStore holds the color theme.
type ThemeStore struct {
	*selection
}

func NewThemeStore(publisher observer.Publisher) *ThemeStore {
	return &ThemeStore{newSelection("preference.theme", ThemeCookie, "dark", []string{"dark", "light"}, publisher)}
}

func (s *ThemeStore) SetTheme(prefs Preferences, theme string) error {
	return s.set(prefs, theme)
}

func (s *ThemeStore) SetDefaultTheme(prefs Preferences) string {
	return s.setDefault(prefs)
}

func (s *ThemeStore) IsDark() bool {
	return s.Current.Get() == "dark"
}

// LanguageStore holds the interface locale.
type LanguageStore struct {
	*selection
}

func NewLanguageStore(publisher observer.Publisher) *LanguageStore {
	return &LanguageStore{newSelection("preference.language", LanguageCookie, "en", []string{"en", "pl"}, publisher)}
}

func (s *LanguageStore) SetLanguage(prefs Preferences, lang string) error {
	return s.set(prefs, lang)
}

func (s *LanguageStore) SetDefaultLanguage(prefs Preferences) string {
	return s.setDefault(prefs)
}

// Locales lists the supported languages, default first.
func (s *LanguageStore) Locales() []string {
	return slices.Clone(s.known)
}

// MapPreferences keeps preferences in memory.
type MapPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMapPreferences(accepted bool) *MapPreferences {
	p := &MapPreferences{values: map[string]string{}}
	if accepted {
		p.values[AcceptedCookie] = "true"
	}
	return p
}

func (p *MapPreferences) Get(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.values[name]
	return value, ok
}

func (p *MapPreferences) Set(name string, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[name] = value
}

func (p *MapPreferences) Accepted() bool {
	value, _ := p.Get(AcceptedCookie)
	return value == "true"
}
