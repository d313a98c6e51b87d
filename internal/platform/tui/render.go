package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 1)

	voteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

// describeTick summarises a tick result in one line.
func describeTick(res tetris.TickResult) string {
	parts := []string{"intent " + res.Intent.String()}
	if res.Locked {
		parts = append(parts, "locked")
	}
	if n := len(res.Cleared); n > 0 {
		parts = append(parts, fmt.Sprintf("cleared %d", n))
	}
	if res.Reset {
		parts = append(parts, "board reset")
	}
	if res.Spawned {
		parts = append(parts, "new piece")
	}
	return strings.Join(parts, ", ")
}

// renderCounts draws the current tally with the leading intent highlighted.
func renderCounts(c vote.Counts) string {
	leading := c.Resolve()
	cell := func(label string, n int, intent vote.Intent) string {
		s := fmt.Sprintf("%s %d", label, n)
		if intent == leading {
			return voteStyle.Render(s)
		}
		return dimStyle.Render(s)
	}
	return strings.Join([]string{
		cell("⬅️", c.Left, vote.Left),
		cell("➡️", c.Right, vote.Right),
		cell("↩️", c.Tilt, vote.TiltLeft),
		cell("⬇️", c.Down, vote.SoftDrop),
	}, " ")
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if width <= textWidth {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
