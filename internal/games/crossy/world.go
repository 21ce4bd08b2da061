package crossy

import "github.com/vovakirdan/crossy-arcade/internal/config"

// World is the append-only lane list.
// Row 0 is the implicit starting strip; lanes[i] describes row i+1.
type World struct {
	gen       *Generator
	lanes     []Lane
	initial   int
	batch     int
	threshold int
}

// NewWorld creates a world and generates its initial batch.
func NewWorld(seed int64, cfg *config.CrossyConfig, diff *config.DifficultyManager) *World {
	w := &World{
		gen:       NewGenerator(seed, cfg, diff),
		initial:   cfg.Lanes.Initial,
		batch:     cfg.Lanes.Batch,
		threshold: cfg.Lanes.RowsAheadThreshold,
	}
	w.lanes = w.gen.Generate(w.initial)
	return w
}

// Reset discards every lane and regenerates the initial batch from seed.
func (w *World) Reset(seed int64) {
	w.gen.Reset(seed)
	w.lanes = w.gen.Generate(w.initial)
}

// Len returns the number of generated lanes.
func (w *World) Len() int {
	return len(w.lanes)
}

// Lanes returns the lane list. Callers must treat it as read-only.
func (w *World) Lanes() []Lane {
	return w.lanes
}

// LanesFrom returns the lanes starting at index from.
func (w *World) LanesFrom(from int) []Lane {
	if from < 0 {
		from = 0
	}
	if from >= len(w.lanes) {
		return nil
	}
	return w.lanes[from:]
}

// Lane returns the lane describing row. Row 0 and rows past the end have none.
func (w *World) Lane(row int) (Lane, bool) {
	i := row - 1
	if i < 0 || i >= len(w.lanes) {
		return nil, false
	}
	return w.lanes[i], true
}

// Forest returns the forest lane at row, if row is one.
func (w *World) Forest(row int) (*ForestLane, bool) {
	l, ok := w.Lane(row)
	if !ok {
		return nil, false
	}
	f, ok := l.(*ForestLane)
	return f, ok
}

// AtTrailingEdge reports whether row sits exactly on the extension trigger.
func (w *World) AtTrailingEdge(row int) bool {
	return row == len(w.lanes)-w.threshold
}

// PastTrailingEdge reports whether row is on or beyond the extension trigger.
func (w *World) PastTrailingEdge(row int) bool {
	return row >= len(w.lanes)-w.threshold
}

// Extend appends one batch and returns the index of its first lane.
// The batch is fully built before it joins the list.
func (w *World) Extend() (from, count int) {
	batch := w.gen.Generate(w.batch)
	from = len(w.lanes)
	w.lanes = append(w.lanes, batch...)
	return from, len(batch)
}
