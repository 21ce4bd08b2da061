package crossy

// Event is pushed to the session listener after a state change.
type Event interface {
	sessionEvent()
}

// Listener receives session events synchronously, on the caller's goroutine.
type Listener func(Event)

// CornCollectedEvent is sent when the player picks up corn.
type CornCollectedEvent struct {
	At    Position
	Total int // Corn collected this run
}

func (CornCollectedEvent) sessionEvent() {}

// LanesAddedEvent is sent after the world grows by one batch.
type LanesAddedEvent struct {
	From  int // Index of the first new lane
	Count int
}

func (LanesAddedEvent) sessionEvent() {}

// ScoreMilestoneEvent is sent each time the score crosses a milestone.
type ScoreMilestoneEvent struct {
	Score int
}

func (ScoreMilestoneEvent) sessionEvent() {}

// RespawnedEvent is sent when a hit sends the player back to the checkpoint.
type RespawnedEvent struct {
	At Position
}

func (RespawnedEvent) sessionEvent() {}

// GameOverEvent is sent when a hit ends the run.
type GameOverEvent struct {
	Score int
	Corn  int
}

func (GameOverEvent) sessionEvent() {}

// ResetEvent is sent after the session starts a new run.
type ResetEvent struct {
	PlayCount int
}

func (ResetEvent) sessionEvent() {}

// EventName returns a short name for logs and the wire protocol.
func EventName(e Event) string {
	switch e.(type) {
	case CornCollectedEvent:
		return "corn_collected"
	case LanesAddedEvent:
		return "lanes_added"
	case ScoreMilestoneEvent:
		return "score_milestone"
	case RespawnedEvent:
		return "respawned"
	case GameOverEvent:
		return "game_over"
	case ResetEvent:
		return "reset"
	default:
		return "unknown"
	}
}
