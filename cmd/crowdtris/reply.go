package main

import (
	"context"
	"errors"
	"fmt"
	"os/user"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crowdtris/internal/storage"
	"github.com/vovakirdan/crowdtris/internal/vote"
)

var flagAuthor string

var replyCmd = &cobra.Command{
	Use:   "reply <text>...",
	Short: "Reply to the latest board",
	Long: `Leave a reply under the latest published board. The next tick counts it
as a vote.

Examples:
  crowdtris reply left
  crowdtris reply "spin it ↩️" --author alice`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReply,
}

func init() {
	replyCmd.Flags().StringVar(&flagAuthor, "author", "", "Reply author (default: current user)")
}

func runReply(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	author := flagAuthor
	if author == "" {
		if u, err := user.Current(); err == nil {
			author = u.Username
		}
	}

	text := strings.Join(args, " ")
	if _, err := a.feed.AddReply(context.Background(), author, text); err != nil {
		if errors.Is(err, storage.ErrNoPosts) {
			return errors.New("no board published yet; run 'crowdtris tick' first")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Replied %q (counts as %s)\n", text, vote.Interpret([]string{text}))
	return nil
}
