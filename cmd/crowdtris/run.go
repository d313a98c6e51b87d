package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crowdtris/internal/metrics"
	"github.com/vovakirdan/crowdtris/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Tick forever on the configured interval",
	Long: `Run the tick loop in the foreground until interrupted. The wait between
ticks comes from board.interval in the config.

Examples:
  crowdtris run
  crowdtris run --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runLoop,
}

func runLoop(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.prune(ctx)
	sess := a.newSession(ctx, session.WithObserver(metrics.New()))
	a.logger.Info("tick loop started",
		"width", sess.Grid.Width(),
		"height", sess.Grid.Height(),
		"interval", sess.Grid.TickInterval,
	)

	if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info("tick loop stopped")
	return nil
}
