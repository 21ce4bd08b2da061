package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/crossy-arcade/internal/core"
	"github.com/vovakirdan/crossy-arcade/internal/leaderboard"
	"github.com/vovakirdan/crossy-arcade/internal/platform/tui"
	"github.com/vovakirdan/crossy-arcade/internal/storage"
)

// backends are the score sinks shared by every command that plays games.
type backends struct {
	store  *storage.Store
	remote *leaderboard.Postgres
	logger *log.Logger
}

// openBackends opens the local store and the optional remote leaderboard.
// Both are best effort: the game still runs without them.
func openBackends(logger *log.Logger) *backends {
	b := &backends{logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
	} else {
		b.store = store
	}

	if flagLeaderboardDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pg, err := leaderboard.OpenPostgres(ctx, flagLeaderboardDSN)
		if err != nil {
			logger.Warn("could not reach leaderboard, scores stay local", "error", err)
		} else {
			b.remote = pg
		}
	}
	return b
}

// remoteSubmitter avoids handing out a typed nil.
func (b *backends) remoteSubmitter() leaderboard.Submitter {
	if b.remote == nil {
		return nil
	}
	return b.remote
}

func (b *backends) submitter() leaderboard.Submitter {
	return tui.SubmitterFor(b.store, b.remoteSubmitter())
}

func (b *backends) Close() {
	if b.store != nil {
		b.store.Close()
	}
	if b.remote != nil {
		b.remote.Close()
	}
}

// tuiLogger writes to ~/.arcade/arcade.log while the alt screen owns the terminal.
// The returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           log.GetLevel(),
		ReportTimestamp: true,
	})
	return logger, func() { f.Close() }
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig(name string) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		PlayerName: name,
	}
}
