package config

import "math"

// DifficultyManager calculates dynamic game parameters based on progress.
// Progress is the lane index for "row" progression and the score for
// "score" progression; ticks drive "time" progression.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
// It never decreases as progress or ticks grow.
func (d *DifficultyManager) Level(progress int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var p float64
	switch d.cfg.Progression.Type {
	case "row", "score":
		p = float64(progress) / maxAt
	case "time":
		p = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	p = clampF(p, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + p*(1.0-d.initialLevel)
}

// Speed scales baseSpeed from base to base * (1 + speedMultiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, progress int, ticks int) float64 {
	level := d.Level(progress, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Crowding returns base plus up to gap_reduction extra obstacles.
func (d *DifficultyManager) Crowding(base int, progress int, ticks int) int {
	level := d.Level(progress, ticks)
	return base + int(level*float64(d.cfg.Scaling.GapReduction))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
