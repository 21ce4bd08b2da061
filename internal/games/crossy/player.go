package crossy

import "time"

// Direction is a single hop.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// String returns the wire name of the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a wire name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward":
		return Forward, true
	case "backward":
		return Backward, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return 0, false
	}
}

// Delta returns the row and tile change of one hop.
func (d Direction) Delta() (rows, tiles int) {
	switch d {
	case Forward:
		return 1, 0
	case Backward:
		return -1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Position is a grid coordinate.
type Position struct {
	Row  int
	Tile int
}

// Step returns the position one hop in direction d.
func (p Position) Step(d Direction) Position {
	dr, dt := d.Delta()
	return Position{Row: p.Row + dr, Tile: p.Tile + dt}
}

// player holds the committed position, the one-slot move queue and the
// transient respawn and shake timers.
type player struct {
	pos   Position
	queue []Direction

	respawning   bool
	respawnUntil time.Time
	shaking      bool
	shakeUntil   time.Time
}

func (p *player) reset() {
	p.pos = Position{}
	p.queue = p.queue[:0]
	p.respawning = false
	p.respawnUntil = time.Time{}
	p.shaking = false
	p.shakeUntil = time.Time{}
}

// target returns where the player ends up after the queued moves plus next.
func (p *player) target(next Direction) Position {
	pos := p.pos
	for _, d := range p.queue {
		pos = pos.Step(d)
	}
	return pos.Step(next)
}

// expire clears transients whose deadline has passed.
func (p *player) expire(now time.Time) {
	if p.respawning && !now.Before(p.respawnUntil) {
		p.respawning = false
	}
	if p.shaking && !now.Before(p.shakeUntil) {
		p.shaking = false
	}
}
