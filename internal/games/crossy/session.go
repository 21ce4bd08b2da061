package crossy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/crossy-arcade/internal/config"
)

// Status is the run state of a session.
type Status string

const (
	StatusRunning Status = "running"
	StatusOver    Status = "over"
)

// Progress is the score and status bookkeeping of a session.
type Progress struct {
	Score        int
	Corn         int
	Checkpoint   Position
	Status       Status
	Paused       bool
	PlayCount    int // Runs started after the first, kept across resets
	LifetimeCorn int // Corn collected over all runs, kept across resets
	Best         int // Best score over all runs, kept across resets
}

// Session owns the world, the player and the progress of one game.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	cfg        config.CrossyConfig
	difficulty *config.DifficultyManager
	seeds      *rand.Rand
	world      *World
	player     player
	progress   Progress

	// armed is set by a corn pickup and consumed by the next respawn.
	armed bool

	now      func() time.Time
	listener Listener
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now as the session clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithListener registers the receiver of session events.
func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listener = l
	}
}

// NewSession creates a session and its initial world from seed.
func NewSession(cfg config.CrossyConfig, seed int64, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		seeds:      rand.New(rand.NewSource(seed)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.world = NewWorld(s.seeds.Int63(), &s.cfg, s.difficulty)
	s.player.reset()
	s.progress = Progress{Status: StatusRunning}
	return s
}

func (s *Session) emit(e Event) {
	if s.listener != nil {
		s.listener(e)
	}
}

// QueueMove requests a hop. Illegal or badly timed requests are ignored.
func (s *Session) QueueMove(d Direction) {
	if s.progress.Status == StatusOver {
		s.player.queue = s.player.queue[:0]
		return
	}
	if s.player.respawning {
		return
	}
	if len(s.player.queue) > 0 {
		return
	}
	if !s.legal(s.player.target(d)) {
		return
	}
	s.player.queue = append(s.player.queue, d)
}

// legal reports whether the player may stand on pos.
func (s *Session) legal(pos Position) bool {
	if pos.Row < 0 {
		return false
	}
	if pos.Tile < s.cfg.Lanes.MinTile || pos.Tile > s.cfg.Lanes.MaxTile {
		return false
	}
	if f, ok := s.world.Forest(pos.Row); ok && f.HasTree(pos.Tile) {
		return false
	}
	return true
}

// StepCompleted commits the queued hop once its animation has finished.
// It collects corn, extends the world and updates the score.
func (s *Session) StepCompleted() {
	if len(s.player.queue) == 0 {
		return
	}
	d := s.player.queue[0]
	s.player.queue = s.player.queue[1:]
	s.player.pos = s.player.pos.Step(d)
	pos := s.player.pos

	if f, ok := s.world.Forest(pos.Row); ok && f.collect(pos.Tile, s.now()) {
		s.progress.Corn++
		s.progress.LifetimeCorn++
		s.progress.Checkpoint = pos
		s.armed = true
		s.emit(CornCollectedEvent{At: pos, Total: s.progress.Corn})
	}

	if s.world.AtTrailingEdge(pos.Row) {
		s.extend()
	}

	s.updateScore(pos.Row)
}

func (s *Session) updateScore(row int) {
	if row <= s.progress.Score {
		return
	}
	s.progress.Score = row
	s.progress.Best = max(s.progress.Best, row)
	if every := s.cfg.Player.MilestoneEvery; every > 0 && row%every == 0 {
		s.emit(ScoreMilestoneEvent{Score: row})
	}
}

func (s *Session) extend() int {
	from, count := s.world.Extend()
	if count > 0 {
		s.emit(LanesAddedEvent{From: from, Count: count})
	}
	return count
}

// Tick runs periodic upkeep: it expires transients, prunes old corn
// records and extends the world if the player reached the trailing window.
func (s *Session) Tick() {
	now := s.now()
	s.player.expire(now)

	despawn := time.Duration(s.cfg.Player.CornDespawnMS) * time.Millisecond
	cutoff := now.Add(-despawn)
	for _, l := range s.world.Lanes() {
		if f, ok := l.(*ForestLane); ok && len(f.Collected) > 0 {
			f.pruneCollected(cutoff)
		}
	}

	for s.world.PastTrailingEdge(s.player.pos.Row) {
		if s.extend() == 0 {
			break
		}
	}
}

// Hit reports a fatal collision. The player respawns at the checkpoint
// when corn was collected since the last respawn; otherwise the run ends.
func (s *Session) Hit() {
	if s.progress.Status == StatusOver || s.player.respawning {
		return
	}
	now := s.now()
	s.player.shaking = true
	s.player.shakeUntil = now.Add(time.Duration(s.cfg.Player.ShakeMS) * time.Millisecond)

	if s.armed {
		s.armed = false
		s.player.pos = s.progress.Checkpoint
		s.player.queue = s.player.queue[:0]
		s.player.respawning = true
		s.player.respawnUntil = now.Add(time.Duration(s.cfg.Player.RespawnMS) * time.Millisecond)
		s.emit(RespawnedEvent{At: s.player.pos})
		return
	}

	s.progress.Status = StatusOver
	s.player.queue = s.player.queue[:0]
	s.emit(GameOverEvent{Score: s.progress.Score, Corn: s.progress.Corn})
}

// Reset starts a new run. The world, the player and the progress are all
// reset before Reset returns; lifetime counters are kept.
func (s *Session) Reset() {
	s.world.Reset(s.seeds.Int63())
	s.player.reset()
	s.armed = false
	s.progress = Progress{
		Status:       StatusRunning,
		PlayCount:    s.progress.PlayCount + 1,
		LifetimeCorn: s.progress.LifetimeCorn,
		Best:         s.progress.Best,
	}
	s.emit(ResetEvent{PlayCount: s.progress.PlayCount})
}

// SetPaused records the pause flag. Moves are still accepted while paused.
func (s *Session) SetPaused(paused bool) {
	s.progress.Paused = paused
}

// Position returns the committed position.
func (s *Session) Position() Position {
	return s.player.pos
}

// Pending returns a copy of the queued moves.
func (s *Session) Pending() []Direction {
	out := make([]Direction, len(s.player.queue))
	copy(out, s.player.queue)
	return out
}

// Respawning reports whether moves are currently rejected after a respawn.
func (s *Session) Respawning() bool {
	return s.player.respawning
}

// Shaking reports whether the hit feedback is active.
func (s *Session) Shaking() bool {
	return s.player.shaking
}

// Progress returns the score and status bookkeeping.
func (s *Session) Progress() Progress {
	return s.progress
}

// Status returns the run status.
func (s *Session) Status() Status {
	return s.progress.Status
}

// World returns the lane list owner. Callers must not mutate lanes.
func (s *Session) World() *World {
	return s.world
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.CrossyConfig {
	return s.cfg
}
