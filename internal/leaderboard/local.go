package leaderboard

import (
	"context"
	"fmt"
)

// ScoreSaver is the part of the SQLite store a Local board needs.
type ScoreSaver interface {
	SaveScore(gameID, playerName string, score, corn int) (int64, error)
}

// Local records runs in the local score database.
type Local struct {
	store ScoreSaver
}

// NewLocal wraps a score store.
func NewLocal(store ScoreSaver) *Local {
	return &Local{store: store}
}

// Submit implements Submitter.
func (l *Local) Submit(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := l.store.SaveScore(e.GameID, e.Name, e.Score, e.Corn); err != nil {
		return fmt.Errorf("leaderboard: local: %w", err)
	}
	return nil
}
