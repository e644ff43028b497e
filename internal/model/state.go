package model

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	// ThemeCookie stores the visitor's theme between requests.
	ThemeCookie = "theme"
)

// AppState is the per-visitor state threaded through page rendering.
type AppState struct {
	Theme string
}

// NewAppState normalizes a stored theme value; anything unknown is light.
func NewAppState(theme string) *AppState {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return &AppState{Theme: theme}
}

func (s *AppState) ToggleTheme() {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}
}
