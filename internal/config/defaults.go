package config

import (
	_ "embed"
)

//go:embed defaults/crossy.yaml
var defaultCrossyYAML []byte

// DefaultCrossyConfig returns the default Crossy configuration.
func DefaultCrossyConfig() CrossyConfig {
	return CrossyConfig{
		Lanes: CrossyLanes{
			MinTile:            -8,
			MaxTile:            8,
			Initial:            20,
			Batch:              20,
			RowsAheadThreshold: 10,
			SafeLanes:          1,
			MaxAttempts:        8,
			Weights: LaneWeights{
				Grass:  0.15,
				Forest: 0.35,
				Log:    0.2,
				Animal: 0.3,
			},
		},
		Forest: CrossyForest{
			MinTrees:   4,
			MaxTrees:   8,
			MinHeight:  1,
			MaxHeight:  3,
			CornChance: 0.35,
			MaxCorn:    2,
		},
		Traffic: CrossyTraffic{
			MinSpeed:     1.0,
			MaxSpeed:     3.0,
			MinSegments:  2,
			MaxSegments:  4,
			MinLogLength: 2,
			MaxLogLength: 3,
			Species:      []string{"cow", "horse", "pig", "sheep"},
			WrapPadding:  4,
		},
		Player: CrossyPlayer{
			HopTicks:       6,
			RespawnMS:      1200,
			ShakeMS:        400,
			CornDespawnMS:  1000,
			MilestoneEvery: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "row",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				GapReduction:    2,
			},
		},
	}
}
