package main

import (
	"context"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crowdtris/internal/platform/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Drive the game in a terminal UI",
	Long: `Open a terminal view that runs the tick loop, shows every published
board and the votes on it, and lets you vote with the keyboard.

Controls:
  ←/h  →/l   - Vote left / right
  ↑/k        - Vote spin
  ↓/j/Space  - Vote drop
  P          - Pause or resume ticking
  T          - Tick now
  Tab        - Switch between votes and recent boards
  Q/Ctrl+C   - Quit

Examples:
  crowdtris watch
  crowdtris watch --theme dark`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	// Get terminal size before the program starts
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	author := "local"
	if u, err := user.Current(); err == nil {
		author = u.Username
	}

	ctx := context.Background()
	a.prune(ctx)
	sess := a.newSession(ctx)
	return tui.RunWatch(sess, a.feed, author, width, height)
}
