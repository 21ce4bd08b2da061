// arcade runs Crossy, an endless lane-hopping game, in the terminal,
// over SSH, or in a browser through a WebSocket bridge.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade web               - Start the WebSocket bridge for browsers
//	arcade scores <game>     - Show high scores for a game
//	arcade schema            - Print the WebSocket protocol schema
//
// Global flags:
//
//	--fps <rate>              - Set tick rate (default: 60)
//	--seed <value>            - Set RNG seed for reproducible gameplay
//	--db <path>               - Set database path (default: ~/.arcade/scores.db)
//	--leaderboard-dsn <dsn>   - Postgres DSN for the shared leaderboard
//	--log-level <level>       - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/crossy-arcade/internal/games/crossy"
)

var (
	// Global flags
	flagFPS            int
	flagSeed           int64
	flagDBPath         string
	flagLeaderboardDSN string
	flagLogLevel       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Crossy Arcade - hop across endless lanes in your terminal",
	Long: `Crossy Arcade is an endless hopper: cross grass, forests, rivers and
roads, collect corn and see how far you get.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  web      - Start the WebSocket bridge for browser clients
  scores   - View high scores
  schema   - Print the WebSocket protocol schema

Examples:
  arcade list
  arcade play crossy
  arcade play crossy --difficulty hard --name ada
  arcade menu
  arcade serve --ssh :2222
  arcade web --addr :8080
  arcade scores crossy`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboardDSN, "leaderboard-dsn", os.Getenv("ARCADE_LEADERBOARD_DSN"), "Postgres DSN for the shared leaderboard (optional)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(schemaCmd)
}
