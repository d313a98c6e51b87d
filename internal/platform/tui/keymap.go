package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crowdtris/internal/vote"
)

// KeyMap defines the key bindings shared by the watch and vote screens.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Tilt    key.Binding
	Drop    key.Binding
	Pause   key.Binding
	Step    key.Binding
	History key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Tilt, k.Drop, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Tilt, k.Drop},
		{k.Pause, k.Step, k.History, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "vote left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "vote right"),
		),
		Tilt: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "vote spin"),
		),
		Drop: key.NewBinding(
			key.WithKeys("down", "j", "s", " "),
			key.WithHelp("↓/j", "vote drop"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tick now"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "replies/posts"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// VoteFor maps a key to the intent it votes for. Returns vote.None for keys
// that are not votes.
func (k KeyMap) VoteFor(msg tea.KeyMsg) vote.Intent {
	switch {
	case key.Matches(msg, k.Left):
		return vote.Left
	case key.Matches(msg, k.Right):
		return vote.Right
	case key.Matches(msg, k.Tilt):
		return vote.TiltLeft
	case key.Matches(msg, k.Drop):
		return vote.SoftDrop
	}
	return vote.None
}

// ReplyText is the reply body posted for a keyboard vote. It always
// interprets back to the same intent.
func ReplyText(intent vote.Intent) string {
	switch intent {
	case vote.Left:
		return "left ⬅️"
	case vote.Right:
		return "right ➡️"
	case vote.TiltLeft:
		return "spin ↩️"
	case vote.SoftDrop:
		return "drop ⬇️"
	}
	return ""
}
