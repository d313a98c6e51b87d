// Package session runs the game one tick at a time: read votes from the
// feed, advance the grid, publish the new board and persist it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/statestore"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

// Fetcher returns the replies to the last published board.
type Fetcher interface {
	FetchMessages(ctx context.Context) ([]string, error)
}

// Publisher publishes a rendered board.
type Publisher interface {
	Publish(ctx context.Context, text string) error
}

// Observer is told about every tick. *metrics.Metrics implements it.
type Observer interface {
	ObserveTick(res tetris.TickResult)
	FetchFailed()
	PublishFailed()
}

// Session ties a grid to its feed and its state store.
type Session struct {
	Grid       *tetris.Grid
	Store      statestore.Store
	Fetcher    Fetcher
	Publisher  Publisher
	Background tetris.Cell

	logger   *log.Logger
	observer Observer
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver attaches a tick observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// WithBackground fixes the glyph drawn for empty cells.
func WithBackground(bg tetris.Cell) Option {
	return func(s *Session) {
		s.Background = bg
	}
}

// New creates a session. The background defaults to the theme for the
// current hour and is not changed afterwards.
func New(grid *tetris.Grid, store statestore.Store, fetcher Fetcher, publisher Publisher, opts ...Option) *Session {
	s := &Session{
		Grid:       grid,
		Store:      store,
		Fetcher:    fetcher,
		Publisher:  publisher,
		Background: BackgroundFor(ThemeAuto, time.Now()),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunOneTick fetches votes, ticks the grid, publishes the render and saves
// the state, in that order. A failed fetch counts as no vote. A failed
// publish stops the tick before anything is saved.
func (s *Session) RunOneTick(ctx context.Context) (tetris.TickResult, error) {
	intent := vote.None
	messages, err := s.Fetcher.FetchMessages(ctx)
	if err != nil {
		s.logger.Warn("fetch replies failed", "err", err)
		if s.observer != nil {
			s.observer.FetchFailed()
		}
	} else {
		intent = vote.Interpret(messages)
	}

	res := s.Grid.Tick(s.Grid.Shapes(), intent)
	if s.observer != nil {
		s.observer.ObserveTick(res)
	}
	s.logger.Debug("tick",
		"votes", len(messages),
		"intent", intent,
		"locked", res.Locked,
		"cleared", len(res.Cleared),
		"reset", res.Reset,
	)

	if err := s.Publisher.Publish(ctx, s.Render()); err != nil {
		if s.observer != nil {
			s.observer.PublishFailed()
		}
		return res, fmt.Errorf("session: publish: %w", err)
	}

	if err := Save(ctx, s.Store, s.Grid); err != nil {
		return res, err
	}
	return res, nil
}

// Render draws the grid with the session background.
func (s *Session) Render() string {
	return s.Grid.RenderText(s.Background)
}

// Run ticks until ctx is done, waiting the grid's TickInterval between ticks.
// Ticks are skipped while the grid is paused. Tick errors are logged and the
// loop keeps going.
func (s *Session) Run(ctx context.Context) error {
	for {
		if !s.Grid.Paused {
			if _, err := s.RunOneTick(ctx); err != nil {
				s.logger.Error("tick failed", "err", err)
			}
		}

		timer := time.NewTimer(s.Grid.TickInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// LoadOrCreate restores the saved grid, or creates a fresh width×height grid
// when nothing usable is stored. Load failures are logged, never returned.
func LoadOrCreate(ctx context.Context, store statestore.Store, width, height int, logger *log.Logger, opts ...tetris.Option) *tetris.Grid {
	snap, err := store.Load(ctx)
	if err == nil {
		grid, err := tetris.FromSnapshot(snap, opts...)
		if err == nil {
			return grid
		}
		logDebug(logger, "saved state unusable, starting fresh", "err", err)
	} else if errors.Is(err, statestore.ErrNotFound) {
		logDebug(logger, "no saved state, starting fresh")
	} else {
		logDebug(logger, "load state failed, starting fresh", "err", err)
	}
	return tetris.New(width, height, opts...)
}

// Save persists the grid.
func Save(ctx context.Context, store statestore.Store, grid *tetris.Grid) error {
	if err := store.Save(ctx, grid.Snapshot()); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

func logDebug(logger *log.Logger, msg string, keyvals ...any) {
	if logger != nil {
		logger.Debug(msg, keyvals...)
	}
}
