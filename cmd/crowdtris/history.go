package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crowdtris/internal/vote"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent boards with their vote counts",
	Long: `Display the most recent published boards, newest first, with how many
replies each got. The latest board also shows its current tally.

Examples:
  crowdtris history
  crowdtris history --limit 25`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of boards to list")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	posts, err := a.feed.RecentPosts(ctx, flagHistoryLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Recent boards")
	fmt.Fprintln(out)

	if len(posts) == 0 {
		fmt.Fprintln(out, "No boards published yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'crowdtris tick' to publish the first one!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-6s  %-6s  %s\n", "Board", "Votes", "Posted")
	fmt.Fprintf(out, "  %-6s  %-6s  %s\n", "-----", "-----", "------")

	for _, p := range posts {
		fmt.Fprintf(out, "  %-6d  %-6d  %s\n", p.ID, p.Replies, p.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}

	// Show the running tally for the latest board
	messages, err := a.feed.FetchMessages(ctx)
	if err == nil && len(messages) > 0 {
		c := vote.Tally(messages)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Latest tally: left %d, right %d, spin %d, down %d -> %s\n",
			c.Left, c.Right, c.Tilt, c.Down, c.Resolve())
	}
	return nil
}
