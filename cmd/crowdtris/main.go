// crowdtris is a falling-block game played by a crowd: every tick publishes
// the board, and the replies to it vote on the next move.
//
// Usage:
//
//	crowdtris tick            - Advance the game by one tick
//	crowdtris run             - Tick forever on the configured interval
//	crowdtris watch           - Drive the game in a terminal UI and vote with the keyboard
//	crowdtris serve           - Drive the game and accept votes over SSH and HTTP
//	crowdtris reply <text>    - Reply to the latest board
//	crowdtris show            - Print the saved board
//	crowdtris history         - List recent boards with their vote counts
//	crowdtris reset           - Start a fresh board
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.crowdtris, ./configs, built-in)
//	--state <path>      - Saved game path for the file backend
//	--db <path>         - Feed database path
//	--seed <value>      - RNG seed for reproducible spawning
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagState    string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
	flagTheme    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crowdtris",
	Short: "Crowdtris - a falling-block game steered by votes",
	Long: `Crowdtris is a falling-block puzzle whose moves are decided by votes.

Every tick publishes the board to a feed. Replies to the latest board are
counted: "left", "right", "spin" and "down" (or their arrow emoji) decide the
next move.

Available commands:
  tick     - Advance the game by exactly one tick
  run      - Tick forever on the configured interval
  watch    - Drive the game in a terminal UI
  serve    - Drive the game and take votes over SSH and HTTP
  reply    - Reply to the latest board
  show     - Print the saved board
  history  - List recent boards
  reset    - Start a fresh board

Examples:
  crowdtris tick
  crowdtris reply "go left ⬅️"
  crowdtris watch
  crowdtris serve --ssh :2222 --http :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagState, "state", "", "Path to the saved game (file backend)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the feed database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Background theme: auto, dark, light")

	// Add subcommands
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
}
