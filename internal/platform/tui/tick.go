// Package tui provides the Bubble Tea screens for crowdtris: a local watch
// view that drives the game and an SSH voting screen served through Wish.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/session"
)

// TickMsg is sent when the tick interval elapses.
type TickMsg time.Time

// tickDoneMsg carries the outcome of one finished game tick.
type tickDoneMsg struct {
	result tetris.TickResult
	err    error
}

// refreshMsg asks a screen to reload the feed.
type refreshMsg time.Time

// tickCmd returns a Bubble Tea command that sends a TickMsg after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = tetris.DefaultInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// runTickCmd runs one game tick off the update loop.
func runTickCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		res, err := s.RunOneTick(context.Background())
		return tickDoneMsg{result: res, err: err}
	}
}

// refreshCmd schedules a feed reload.
func refreshCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
