package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/games/crossy"
	"github.com/vovakirdan/crossy-arcade/internal/platform/web"
)

var (
	flagWebAddr string
	flagWebTick time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket bridge for browser clients",
	Long: `Start an HTTP server exposing Crossy sessions over WebSocket.

Each connection at /ws gets its own session. The browser animates hops,
reports collisions and sends step-completed messages; the server validates
moves, generates lanes and keeps score. /healthz answers with "ok".

Run 'arcade schema' for the message formats.

Examples:
  arcade web
  arcade web --addr :9000 --difficulty hard
  arcade web --leaderboard-dsn postgres://arcade@localhost/arcade`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().DurationVar(&flagWebTick, "tick", 100*time.Millisecond, "Session tick interval")
	webCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	webCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.GetLevel(),
		ReportTimestamp: true,
	})

	preset, ok := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}
	crossy.SetConfigPath(flagConfig)
	gameCfg, err := crossy.LoadConfigWithPreset(preset)
	if err != nil {
		logger.Warn("using default game config", "error", err)
	}

	b := openBackends(logger)
	defer b.Close()

	cfg := web.DefaultConfig()
	cfg.Addr = flagWebAddr
	cfg.Game = gameCfg
	cfg.TickInterval = flagWebTick
	cfg.Seed = flagSeed
	cfg.Submitter = b.submitter()
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := web.NewServer(cfg).ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		b.Close()
		os.Exit(1)
	}
}
