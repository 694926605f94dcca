package preferencestore

import (
	"testing"

	"leaguerats/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTheme(t *testing.T) {
	tests := []struct {
		name          string
		accepted      bool
		theme         string
		expectedError error
		persisted     bool
	}{
		{name: "acceptedCookies", accepted: true, theme: "light", persisted: true},
		{name: "refusedCookies", accepted: false, theme: "light"},
		{name: "unknownTheme", accepted: true, theme: "sepia", expectedError: errs.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewThemeStore(nil)
			prefs := NewMapPreferences(tt.accepted)

			err := store.SetTheme(prefs, tt.theme)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, "dark", store.Current.Get())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.theme, store.Current.Get())
			assert.False(t, store.IsDark())

			stored, ok := prefs.Get(ThemeCookie)
			assert.Equal(t, tt.persisted, ok)
			if tt.persisted {
				assert.Equal(t, tt.theme, stored)
			}
		})
	}
}

func TestSetDefaultTheme(t *testing.T) {
	store := NewThemeStore(nil)

	// Stored values are ignored without consent.
	refused := NewMapPreferences(false)
	refused.Set(ThemeCookie, "light")
	assert.Equal(t, "dark", store.SetDefaultTheme(refused))

	accepted := NewMapPreferences(true)
	accepted.Set(ThemeCookie, "light")
	assert.Equal(t, "light", store.SetDefaultTheme(accepted))
	assert.Equal(t, "light", store.Current.Get())

	accepted.Set(ThemeCookie, "neon")
	assert.Equal(t, "dark", store.SetDefaultTheme(accepted))

	assert.Equal(t, "dark", store.SetDefaultTheme(nil))
	assert.True(t, store.IsDark())
}

func TestLanguageStore(t *testing.T) {
	store := NewLanguageStore(nil)
	prefs := NewMapPreferences(true)

	assert.Equal(t, "en", store.Current.Get())
	assert.Equal(t, []string{"en", "pl"}, store.Locales())

	require.NoError(t, store.SetLanguage(prefs, "pl"))
	stored, _ := prefs.Get(LanguageCookie)
	assert.Equal(t, "pl", stored)

	assert.ErrorIs(t, store.SetLanguage(prefs, "de"), errs.ErrInvalidInput)

	fresh := NewLanguageStore(nil)
	assert.Equal(t, "pl", fresh.SetDefaultLanguage(prefs))
}
