package crossy

import (
	"math"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/core"
)

// Hazards moves log and animal segments along a wrapping track and decides
// whether the player's tile is deadly. The track extends wrap_padding tiles
// past each side of the playfield so segments can leave and re-enter.
type Hazards struct {
	trackStart int
	trackSize  int
}

// NewHazards builds the track for the configured playfield.
func NewHazards(cfg config.CrossyConfig) Hazards {
	pad := max(cfg.Traffic.WrapPadding, 0)
	return Hazards{
		trackStart: cfg.Lanes.MinTile - pad,
		trackSize:  cfg.Lanes.MaxTile - cfg.Lanes.MinTile + 1 + 2*pad,
	}
}

// Start returns the leading tile of seg after elapsed seconds, as a
// fractional track position.
func (h Hazards) Start(seg Segment, speed float64, rightward bool, elapsed float64) float64 {
	shift := speed * elapsed
	if !rightward {
		shift = -shift
	}
	return core.WrapF(float64(seg.Index)+shift, float64(h.trackStart), float64(h.trackSize))
}

// covers reports whether seg spans the center of tile after elapsed seconds.
func (h Hazards) covers(seg Segment, speed float64, rightward bool, elapsed float64, tile int) bool {
	start := h.Start(seg, speed, rightward, elapsed)
	d := core.WrapF(float64(tile)+0.5-start, 0, float64(h.trackSize))
	return d < float64(seg.Length)
}

// Occupied returns the playfield tiles covered by segs after elapsed seconds.
func (h Hazards) Occupied(segs []Segment, speed float64, rightward bool, elapsed float64, minTile, maxTile int) map[int]bool {
	out := make(map[int]bool)
	for tile := minTile; tile <= maxTile; tile++ {
		for _, s := range segs {
			if h.covers(s, speed, rightward, elapsed, tile) {
				out[tile] = true
				break
			}
		}
	}
	return out
}

// RunOver reports whether an animal covers tile on lane l.
func (h Hazards) RunOver(l Lane, tile int, elapsed float64) bool {
	a, ok := l.(*AnimalLane)
	if !ok {
		return false
	}
	for _, s := range a.Segments() {
		if h.covers(s, a.Speed, a.Rightward, elapsed, tile) {
			return true
		}
	}
	return false
}

// Drowned reports whether tile on lane l is open water.
func (h Hazards) Drowned(l Lane, tile int, elapsed float64) bool {
	lg, ok := l.(*LogLane)
	if !ok {
		return false
	}
	for _, s := range lg.Logs {
		if h.covers(s, lg.Speed, lg.Rightward, elapsed, tile) {
			return false
		}
	}
	return true
}

// round2 keeps snapshot floats stable across platforms.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
