// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// CrossyConfig contains all configuration for the Crossy hopper game.
type CrossyConfig struct {
	Lanes      CrossyLanes      `yaml:"lanes"`
	Forest     CrossyForest     `yaml:"forest"`
	Traffic    CrossyTraffic    `yaml:"traffic"`
	Player     CrossyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CrossyLanes defines the playfield width and the lane batch lifecycle.
type CrossyLanes struct {
	MinTile            int         `yaml:"min_tile"`
	MaxTile            int         `yaml:"max_tile"`
	Initial            int         `yaml:"initial"`              // Lanes generated on start/reset
	Batch              int         `yaml:"batch"`                // Lanes appended per extension
	RowsAheadThreshold int         `yaml:"rows_ahead_threshold"` // Extend when row == len(lanes) - threshold
	SafeLanes          int         `yaml:"safe_lanes"`           // Leading grass lanes of a fresh world
	MaxAttempts        int         `yaml:"max_attempts"`         // Redraws before a lane falls back to grass
	Weights            LaneWeights `yaml:"weights"`
}

// LaneWeights are relative frequencies of each lane kind.
type LaneWeights struct {
	Grass  float64 `yaml:"grass"`
	Forest float64 `yaml:"forest"`
	Log    float64 `yaml:"log"`
	Animal float64 `yaml:"animal"`
}

// Total returns the sum of all weights.
func (w LaneWeights) Total() float64 {
	return w.Grass + w.Forest + w.Log + w.Animal
}

// CrossyForest defines tree and corn placement on forest lanes.
type CrossyForest struct {
	MinTrees   int     `yaml:"min_trees"`
	MaxTrees   int     `yaml:"max_trees"`
	MinHeight  int     `yaml:"min_height"`
	MaxHeight  int     `yaml:"max_height"`
	CornChance float64 `yaml:"corn_chance"` // Probability a forest lane carries corn
	MaxCorn    int     `yaml:"max_corn"`
}

// CrossyTraffic defines moving segments on log and animal lanes.
type CrossyTraffic struct {
	MinSpeed     float64  `yaml:"min_speed"` // Tiles per second
	MaxSpeed     float64  `yaml:"max_speed"`
	MinSegments  int      `yaml:"min_segments"`
	MaxSegments  int      `yaml:"max_segments"`
	MinLogLength int      `yaml:"min_log_length"`
	MaxLogLength int      `yaml:"max_log_length"`
	Species      []string `yaml:"species"`
	WrapPadding  int      `yaml:"wrap_padding"` // Off-screen tiles on each side of the track
}

// CrossyPlayer defines player timing.
type CrossyPlayer struct {
	HopTicks       int `yaml:"hop_ticks"`       // Animation length of one hop
	RespawnMS      int `yaml:"respawn_ms"`      // Moves are rejected while respawning
	ShakeMS        int `yaml:"shake_ms"`        // Cosmetic shake after a hit
	CornDespawnMS  int `yaml:"corn_despawn_ms"` // Lifetime of a collected-corn record
	MilestoneEvery int `yaml:"milestone_every"` // Score interval for milestone events
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "row", "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Row/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	GapReduction    int     `yaml:"gap_reduction"`    // Free tiles removed from forest lanes at max difficulty
}

// Bounds on segments (logs or animals) per lane.
const (
	MinSegmentsPerLane = 2
	MaxSegmentsPerLane = 4
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset maps a flag value to a preset. Unknown names return false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	for _, p := range Presets {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
