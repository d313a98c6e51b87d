package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crowdtris/internal/session"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved board",
	Long: `Print the saved board without ticking. Nothing is published or saved.

Examples:
  crowdtris show
  crowdtris show --theme light`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	grid := a.loadGrid(context.Background())
	bg := session.BackgroundFor(a.cfg.Theme, time.Now())

	fmt.Fprintln(cmd.OutOrStdout(), grid.RenderText(bg))
	fmt.Fprintf(cmd.OutOrStdout(), "%dx%d, %d pieces\n", grid.Width(), grid.Height(), len(grid.Pieces()))
	return nil
}
