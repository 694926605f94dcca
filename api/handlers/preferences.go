package handlers

import (
	"net/http"

	"leaguerats/internal/stores/preferencestore"

	"github.com/gin-gonic/gin"
)

// Preferences kept in browser cookies.
type cookiePreferences struct {
	c      *gin.Context
	secure bool
}

func (p cookiePreferences) Get(name string) (string, bool) {
	value, err := p.c.Cookie(name)
	if err != nil {
		return "", false
	}
	return value, true
}

func (p cookiePreferences) Set(name string, value string) {
	p.c.SetCookie(name, value, int(preferencestore.MaxAge.Seconds()), "/", "", p.secure, false)
}

func (p cookiePreferences) Accepted() bool {
	value, ok := p.Get(preferencestore.AcceptedCookie)
	return ok && value == "true"
}

type preferenceBody struct {
	Value string `json:"value" binding:"required"`
}

type consentBody struct {
	Accepted bool `json:"accepted"`
}

// PreferenceHandler reads and stores the visitor theme and language.
type PreferenceHandler struct {
	secureCookies bool
}

type PreferenceHandlerDependencies struct {
	SecureCookies bool
}

func NewPreferenceHandler(deps *PreferenceHandlerDependencies) *PreferenceHandler {
	return &PreferenceHandler{secureCookies: deps.SecureCookies}
}

func (h *PreferenceHandler) preferences(c *gin.Context) cookiePreferences {
	return cookiePreferences{c: c, secure: h.secureCookies}
}

// Preferences are per visitor, so every request gets its own stores.
func (h *PreferenceHandler) current(prefs preferencestore.Preferences) gin.H {
	theme := preferencestore.NewThemeStore(nil)
	language := preferencestore.NewLanguageStore(nil)
	theme.SetDefaultTheme(prefs)
	language.SetDefaultLanguage(prefs)

	return gin.H{
		"theme":    theme.Current.Get(),
		"dark":     theme.IsDark(),
		"language": language.Current.Get(),
		"locales":  language.Locales(),
		"accepted": prefs.Accepted(),
	}
}

// GetPreferences returns the stored choices, or the defaults.
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	respondResult(c, h.current(h.preferences(c)))
}

// SetTheme selects the color theme.
func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	var body preferenceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	prefs := h.preferences(c)
	if err := preferencestore.NewThemeStore(nil).SetTheme(prefs, body.Value); err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, gin.H{"theme": body.Value, "persisted": prefs.Accepted()})
}

// SetLanguage selects the interface locale.
func (h *PreferenceHandler) SetLanguage(c *gin.Context) {
	var body preferenceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	prefs := h.preferences(c)
	if err := preferencestore.NewLanguageStore(nil).SetLanguage(prefs, body.Value); err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, gin.H{"language": body.Value, "persisted": prefs.Accepted()})
}

// SetConsent records whether preferences may be stored.
func (h *PreferenceHandler) SetConsent(c *gin.Context) {
	var body consentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	value := "false"
	if body.Accepted {
		value = "true"
	}
	h.preferences(c).Set(preferencestore.AcceptedCookie, value)
	c.Status(http.StatusNoContent)
}
