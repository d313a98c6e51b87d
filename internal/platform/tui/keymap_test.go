package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crowdtris/internal/vote"
)

func TestVoteFor(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected vote.Intent
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, vote.Left},
		{"h", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}, vote.Left},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, vote.Right},
		{"l", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, vote.Right},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, vote.TiltLeft},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, vote.SoftDrop},
		{"space", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}, vote.SoftDrop},
		{"pause is not a vote", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, vote.None},
		{"quit is not a vote", tea.KeyMsg{Type: tea.KeyCtrlC}, vote.None},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.VoteFor(tc.msg); got != tc.expected {
				t.Errorf("VoteFor(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestReplyTextInterpretsBack(t *testing.T) {
	for _, intent := range []vote.Intent{vote.Left, vote.Right, vote.TiltLeft, vote.SoftDrop} {
		text := ReplyText(intent)
		if got := vote.Interpret([]string{text}); got != intent {
			t.Errorf("Interpret(%q) = %v, expected %v", text, got, intent)
		}
	}

	if ReplyText(vote.None) != "" {
		t.Error("ReplyText(None) should be empty")
	}
}
