package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
	"github.com/vovakirdan/crowdtris/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a fresh board",
	Long: `Replace the saved game with an empty board of the configured size.
The feed is left alone.

Examples:
  crowdtris reset`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	grid := tetris.New(a.cfg.Board.Width, a.cfg.Board.Height, a.gridOptions()...)
	if err := session.Save(context.Background(), a.state, grid); err != nil {
		return err
	}
	a.logger.Info("board reset", "width", grid.Width(), "height", grid.Height())
	fmt.Fprintln(cmd.OutOrStdout(), "Board reset.")
	return nil
}
