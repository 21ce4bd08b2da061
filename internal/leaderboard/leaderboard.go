// Package leaderboard submits finished runs to local and remote score boards.
// Games only hand over the final score and the player's name; a failing
// board is logged and never reaches the game.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalidEntry is returned for entries that should not be recorded:
// no player name, no game id, or a score of zero or less.
var ErrInvalidEntry = errors.New("leaderboard: invalid entry")

// SubmitTimeout bounds a single best-effort submission.
const SubmitTimeout = 5 * time.Second

// Entry is one finished run.
type Entry struct {
	GameID   string
	Name     string
	Score    int
	PlayerID string // optional
	Corn     int    // local stats only
}

// Validate reports ErrInvalidEntry when the entry must be skipped.
func (e Entry) Validate() error {
	switch {
	case strings.TrimSpace(e.GameID) == "":
		return fmt.Errorf("%w: empty game id", ErrInvalidEntry)
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("%w: empty player name", ErrInvalidEntry)
	case e.Score <= 0:
		return fmt.Errorf("%w: score %d", ErrInvalidEntry, e.Score)
	}
	return nil
}

// Submitter records finished runs somewhere.
type Submitter interface {
	Submit(ctx context.Context, e Entry) error
}

// Multi fans an entry out to every submitter and joins their errors.
type Multi []Submitter

// Submit implements Submitter.
func (m Multi) Submit(ctx context.Context, e Entry) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Report submits e in the background with SubmitTimeout.
// Invalid entries are skipped quietly, other failures are logged.
// The returned channel is closed once the attempt has finished.
func Report(sub Submitter, logger *log.Logger, e Entry) <-chan struct{} {
	done := make(chan struct{})
	if sub == nil {
		close(done)
		return done
	}
	if err := e.Validate(); err != nil {
		if logger != nil {
			logger.Debug("skipping leaderboard entry", "reason", err)
		}
		close(done)
		return done
	}

	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), SubmitTimeout)
		defer cancel()

		if err := sub.Submit(ctx, e); err != nil && logger != nil {
			logger.Warn("leaderboard submission failed", "game", e.GameID, "name", e.Name, "error", err)
			return
		}
		if logger != nil {
			logger.Debug("score submitted", "game", e.GameID, "name", e.Name, "score", e.Score)
		}
	}()
	return done
}

// NewLogger returns the component logger used by submitters.
func NewLogger(base *log.Logger) *log.Logger {
	if base == nil {
		base = log.Default()
	}
	return base.WithPrefix("leaderboard")
}
