package leaderboard

import "context"

// Identities resolves a display name to a stable player id.
type Identities interface {
	PlayerID(name string) (string, error)
}

type identified struct {
	next Submitter
	ids  Identities
}

// WithPlayerIDs fills in Entry.PlayerID from ids before passing entries on.
// Lookup failures leave the id empty; the entry is still submitted.
func WithPlayerIDs(next Submitter, ids Identities) Submitter {
	if next == nil || ids == nil {
		return next
	}
	return identified{next: next, ids: ids}
}

func (s identified) Submit(ctx context.Context, e Entry) error {
	if e.PlayerID == "" && e.Validate() == nil {
		if id, err := s.ids.PlayerID(e.Name); err == nil {
			e.PlayerID = id
		}
	}
	return s.next.Submit(ctx, e)
}
