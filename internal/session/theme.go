package session

import (
	"time"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
)

// Theme names accepted by BackgroundFor.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// BackgroundFor picks the empty-cell glyph. "auto" is dark from 23:00 until
// 10:00 and light otherwise; unknown themes behave like "auto".
func BackgroundFor(theme string, now time.Time) tetris.Cell {
	switch theme {
	case ThemeDark:
		return tetris.DarkBackground
	case ThemeLight:
		return tetris.LightBackground
	}

	hour := now.Hour()
	if hour >= 23 || hour < 10 {
		return tetris.DarkBackground
	}
	return tetris.LightBackground
}
