package crossy

import "strings"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Row        int
	Tile       int
	Pending    int
	Score      int
	Corn       int
	Best       int
	PlayCount  int
	Status     Status
	Respawning bool
	Lanes      int
	Layout     string  // One letter per lane: g, f, l, a
	FirstSpeed float64 // Speed of the first moving lane, rounded
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	p := s.Progress()
	pos := s.Position()

	var layout strings.Builder
	firstSpeed := 0.0
	for _, l := range s.World().Lanes() {
		layout.WriteByte(l.Kind()[0])
		if firstSpeed != 0 {
			continue
		}
		switch v := l.(type) {
		case *LogLane:
			firstSpeed = round2(v.Speed)
		case *AnimalLane:
			firstSpeed = round2(v.Speed)
		}
	}

	return Snapshot{
		Tick:       g.tick,
		Row:        pos.Row,
		Tile:       pos.Tile,
		Pending:    len(s.Pending()),
		Score:      p.Score,
		Corn:       p.Corn,
		Best:       p.Best,
		PlayCount:  p.PlayCount,
		Status:     p.Status,
		Respawning: s.Respawning(),
		Lanes:      s.World().Len(),
		Layout:     layout.String(),
		FirstSpeed: firstSpeed,
	}
}
