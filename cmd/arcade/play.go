package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/core"
	"github.com/vovakirdan/crossy-arcade/internal/games/crossy"
	"github.com/vovakirdan/crossy-arcade/internal/platform/tui"
	"github.com/vovakirdan/crossy-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  W/Up/K      - Hop forward
  S/Down/J    - Hop backward
  A/Left/H    - Hop left
  D/Right/L   - Hop right
  P           - Pause
  R           - Restart (after game over)
  B/Esc       - Back to setup (when paused or over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Wide grass, plenty of corn, slow traffic
  normal - Default lane mix
  hard   - Busy roads and rivers, scarce corn
  fixed  - No progression, stays at config's initial level

Without --difficulty a setup screen asks for the preset and, if --name
is not given, for a player name. Runs without a name are not recorded.

Examples:
  arcade play crossy
  arcade play crossy --difficulty easy --name ada
  arcade play crossy --config ./my-crossy.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name for the leaderboard")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}
	crossy.SetConfigPath(flagConfig)
	crossy.SetDifficultyPreset(flagDifficulty)

	cfg := runtimeConfig(flagName)

	logger, closeLog := tuiLogger()
	defer closeLog()
	b := openBackends(logger)
	defer b.Close()

	if err := playLoop(gameID, preset, cfg, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		b.Close()
		closeLog()
		os.Exit(1)
	}
}

// playLoop runs the game, returning to the setup screen when the player
// backs out of a finished or paused run.
func playLoop(gameID string, preset config.DifficultyPreset, cfg core.RuntimeConfig, b *backends) error {
	for {
		var sel *tui.CrossySelection
		if gameID == "crossy" {
			if preset != "" {
				sel = &tui.CrossySelection{Preset: preset, Name: cfg.PlayerName}
			} else {
				var err error
				sel, err = tui.RunCrossySetup(cfg)
				if err != nil {
					return err
				}
				// User pressed back or quit
				if sel == nil {
					return nil
				}
			}
		}

		game, err := tui.NewGame(gameID, sel, &cfg)
		if err != nil {
			return err
		}
		if cfg.PlayerName == "" {
			b.logger.Info("playing without a name, scores will not be recorded")
		}

		back, err := tui.Run(game, b.submitter(), b.logger, cfg)
		if err != nil {
			return err
		}
		// A preset from flags has no setup screen to return to
		if !back || preset != "" {
			return nil
		}
		cfg.Seed = 0
	}
}
