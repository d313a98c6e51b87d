package session

import (
	"testing"
	"time"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
)

func TestBackgroundFor(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 1, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		theme    string
		now      time.Time
		expected tetris.Cell
	}{
		{ThemeAuto, at(22, 59), tetris.LightBackground},
		{ThemeAuto, at(23, 0), tetris.DarkBackground},
		{ThemeAuto, at(0, 0), tetris.DarkBackground},
		{ThemeAuto, at(9, 59), tetris.DarkBackground},
		{ThemeAuto, at(10, 0), tetris.LightBackground},
		{ThemeAuto, at(15, 30), tetris.LightBackground},
		{"", at(3, 0), tetris.DarkBackground},
		{ThemeDark, at(12, 0), tetris.DarkBackground},
		{ThemeLight, at(2, 0), tetris.LightBackground},
	}

	for _, tc := range tests {
		if got := BackgroundFor(tc.theme, tc.now); got != tc.expected {
			t.Errorf("BackgroundFor(%q, %s) = %q, expected %q", tc.theme, tc.now.Format("15:04"), got, tc.expected)
		}
	}
}
