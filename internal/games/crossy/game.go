// Package crossy implements a Crossy Road-style endless hopper.
// The player hops forward across grass, forest, river and road lanes that
// are generated on demand, collecting corn and avoiding traffic.
package crossy

import (
	"fmt"
	"time"

	"github.com/vovakirdan/crossy-arcade/internal/config"
	"github.com/vovakirdan/crossy-arcade/internal/core"
	"github.com/vovakirdan/crossy-arcade/internal/registry"
)

// epoch anchors the virtual session clock so identical inputs replay identically.
var epoch = time.Unix(0, 0).UTC()

// flashTicks is how long an event message stays in the HUD.
const flashTicks = 90

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names use the config default.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// LoadConfig resolves the configuration the CLI flags select.
func LoadConfig() (config.CrossyConfig, error) {
	return LoadConfigWithPreset(difficultyPreset)
}

// LoadConfigWithPreset loads the configured file and applies preset on top.
// An empty preset keeps the file's difficulty settings. When loading fails
// the preset is applied to the defaults returned alongside the error.
func LoadConfigWithPreset(preset config.DifficultyPreset) (config.CrossyConfig, error) {
	cfg, err := config.LoadCrossy(configPath)
	if err != nil {
		cfg = config.DefaultCrossyConfig()
	}
	if preset != "" {
		config.ApplyCrossyPreset(&cfg, preset)
	}
	return cfg, err
}

// Game adapts a Session to the arcade platform: it animates hops,
// resolves hazards and draws the world.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.CrossyConfig
	haveCfg  bool
	session  *Session
	hazards  Hazards
	listener Listener

	tick     uint64 // Ticks since the game was created; drives the session clock
	runStart uint64 // Tick at which the current world was generated
	hop      int    // Ticks left in the current hop animation
	paused   bool

	flash      string
	flashUntil uint64
}

// New creates a game that loads its config on first Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with an explicit config.
func NewWithConfig(cfg config.CrossyConfig) *Game {
	return &Game{cfg: cfg, haveCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "crossy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Crossy Road"
}

// Description is shown by the game list.
func (g *Game) Description() string {
	return "Hop across roads and rivers, grab corn, go as far as you can"
}

// SetListener chains l after the game's own event handling.
func (g *Game) SetListener(l Listener) {
	g.listener = l
}

// Reset starts the first run, or a new run keeping lifetime counters.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}

	if g.session != nil {
		g.session.Reset()
		g.paused = false
		g.hop = 0
		return
	}

	if !g.haveCfg {
		cfg, err := LoadConfig()
		if err != nil {
			cfg = config.DefaultCrossyConfig()
		}
		g.cfg = cfg
		g.haveCfg = true
	}

	g.hazards = NewHazards(g.cfg)
	g.session = NewSession(g.cfg, runtime.Seed,
		WithClock(g.now),
		WithListener(g.onEvent),
	)
	g.runStart = g.tick
}

// now is the virtual clock: one tick lasts 1/TickRate seconds.
func (g *Game) now() time.Time {
	return epoch.Add(g.ticksToDuration(g.tick))
}

func (g *Game) ticksToDuration(ticks uint64) time.Duration {
	return time.Duration(ticks) * time.Second / time.Duration(g.runtime.TickRate)
}

// elapsed returns seconds since the current world was generated.
func (g *Game) elapsed() float64 {
	return g.ticksToDuration(g.tick - g.runStart).Seconds()
}

func (g *Game) onEvent(e Event) {
	switch ev := e.(type) {
	case ResetEvent:
		g.runStart = g.tick
	case CornCollectedEvent:
		g.showFlash("+1 corn")
	case ScoreMilestoneEvent:
		g.showFlash(fmt.Sprintf("Milestone %d!", ev.Score))
	case RespawnedEvent:
		g.showFlash("Back to the checkpoint")
	}
	if g.listener != nil {
		g.listener(e)
	}
}

func (g *Game) showFlash(msg string) {
	g.flash = msg
	g.flashUntil = g.tick + flashTicks
}

var actionDirections = map[core.Action]Direction{
	core.ActionUp:    Forward,
	core.ActionDown:  Backward,
	core.ActionLeft:  Left,
	core.ActionRight: Right,
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session.Status() == StatusOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.session.SetPaused(g.paused)
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	if g.hop == 0 {
		for _, a := range in.Ordered() {
			d, ok := actionDirections[a]
			if !ok {
				continue
			}
			g.session.QueueMove(d)
			if len(g.session.Pending()) > 0 {
				g.hop = max(g.cfg.Player.HopTicks, 1)
				break
			}
		}
	}

	if g.hop > 0 {
		g.hop--
		if g.hop == 0 {
			g.session.StepCompleted()
		}
	}

	g.session.Tick()
	g.resolveHazards()

	return core.StepResult{State: g.State()}
}

// resolveHazards reports a hit when traffic covers the player's tile or the
// player stands in open water. Nothing is checked mid-hop.
func (g *Game) resolveHazards() {
	if g.hop > 0 || g.session.Respawning() || g.session.Status() == StatusOver {
		return
	}
	pos := g.session.Position()
	lane, ok := g.session.World().Lane(pos.Row)
	if !ok {
		return
	}
	elapsed := g.elapsed()
	if g.hazards.RunOver(lane, pos.Tile, elapsed) {
		g.session.Hit()
		return
	}
	if g.hazards.Drowned(lane, pos.Tile, elapsed) {
		g.session.Hit()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	p := g.session.Progress()
	return core.GameState{
		Score:    p.Score,
		GameOver: p.Status == StatusOver,
		Paused:   g.paused,
	}
}

// Corn returns the corn collected in the current run.
func (g *Game) Corn() int {
	if g.session == nil {
		return 0
	}
	return g.session.Progress().Corn
}

// Session exposes the underlying session for collaborators.
func (g *Game) Session() *Session {
	return g.session
}

// Register the game with the registry
func init() {
	registry.Register("crossy", func() registry.Game {
		return New()
	})
}
