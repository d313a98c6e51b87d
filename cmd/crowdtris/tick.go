package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagQuiet bool

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Advance the game by one tick",
	Long: `Run exactly one tick: read the replies to the latest board, apply the
winning vote, publish the new board and save the game.

Meant to be called from cron or a scheduler.

Examples:
  crowdtris tick
  crowdtris tick --quiet`,
	Args: cobra.NoArgs,
	RunE: runTick,
}

func init() {
	tickCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Do not print the board")
}

func runTick(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	sess := a.newSession(ctx)

	res, err := sess.RunOneTick(ctx)
	if err != nil {
		return err
	}
	a.prune(ctx)

	if !flagQuiet {
		fmt.Fprintln(cmd.OutOrStdout(), sess.Render())
		fmt.Fprintln(cmd.OutOrStdout(), describe(res))
	}
	return nil
}
