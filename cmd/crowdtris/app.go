package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crowdtris/internal/config"
	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/session"
	"github.com/vovakirdan/crowdtris/internal/statestore"
	"github.com/vovakirdan/crowdtris/internal/storage"
)

// app bundles what every command opens: config, logger, state store and feed.
type app struct {
	cfg    config.Config
	logger *log.Logger
	state  statestore.Store
	feed   *storage.Store
}

// loadConfig reads the config and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagState != "" {
		cfg.State.Backend = config.BackendFile
		cfg.State.Path = flagState
	}
	if flagDBPath != "" {
		cfg.Feed.DB = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Board.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	return cfg, cfg.Validate()
}

// newLogger creates the process logger.
func newLogger(level string, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "crowdtris",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}

// openApp loads config and opens the state store and the feed. The caller
// must call close.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: newLogger(cfg.Log.Level, os.Stderr)}

	a.state, err = openStateStore(cfg.State)
	if err != nil {
		return nil, err
	}

	a.feed, err = storage.Open(cfg.Feed.DB)
	if err != nil {
		a.closeState()
		return nil, err
	}
	return a, nil
}

func openStateStore(cfg config.StateConfig) (statestore.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return statestore.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Key), nil
	default:
		return statestore.NewFileStore(cfg.Path)
	}
}

func (a *app) closeState() {
	if c, ok := a.state.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("closing state store", "err", err)
		}
	}
}

func (a *app) close() {
	a.closeState()
	if err := a.feed.Close(); err != nil {
		a.logger.Warn("closing feed", "err", err)
	}
}

// gridOptions turns board config into grid options.
func (a *app) gridOptions() []tetris.Option {
	opts := []tetris.Option{tetris.WithInterval(a.cfg.Board.Interval)}
	if a.cfg.Board.Seed != 0 {
		opts = append(opts, tetris.WithSeed(a.cfg.Board.Seed))
	}
	return opts
}

// loadGrid restores the saved game or starts a new one.
func (a *app) loadGrid(ctx context.Context) *tetris.Grid {
	return session.LoadOrCreate(ctx, a.state, a.cfg.Board.Width, a.cfg.Board.Height, a.logger, a.gridOptions()...)
}

// newSession loads the grid and wires it to the feed. The theme is fixed for
// the life of the session.
func (a *app) newSession(ctx context.Context, opts ...session.Option) *session.Session {
	grid := a.loadGrid(ctx)
	opts = append([]session.Option{
		session.WithLogger(a.logger),
		session.WithBackground(session.BackgroundFor(a.cfg.Theme, time.Now())),
	}, opts...)
	return session.New(grid, a.state, a.feed, a.feed, opts...)
}

// prune trims old posts from the feed when configured to.
func (a *app) prune(ctx context.Context) {
	if a.cfg.Feed.Keep <= 0 {
		return
	}
	n, err := a.feed.Prune(ctx, a.cfg.Feed.Keep)
	if err != nil {
		a.logger.Warn("prune feed failed", "err", err)
		return
	}
	if n > 0 {
		a.logger.Debug("pruned feed", "posts", n)
	}
}

// describe formats a tick result for the terminal.
func describe(res tetris.TickResult) string {
	s := fmt.Sprintf("intent=%s", res.Intent)
	if res.Locked {
		s += " locked"
	}
	if n := len(res.Cleared); n > 0 {
		s += fmt.Sprintf(" cleared=%d", n)
	}
	if res.Reset {
		s += " reset"
	}
	if res.Spawned {
		s += " spawned"
	}
	return s
}
