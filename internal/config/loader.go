package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCrossy loads Crossy configuration.
// Search order: customPath -> ~/.arcade/configs/crossy.yaml -> ./configs/crossy.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadCrossy(customPath string) (CrossyConfig, error) {
	cfg := DefaultCrossyConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("crossy.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "crossy.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	embedded := DefaultCrossyConfig()
	if err := yaml.Unmarshal(defaultCrossyYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultCrossyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file; unreadable or invalid files are skipped.
func tryLoad(path string) (CrossyConfig, bool) {
	cfg := DefaultCrossyConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate reports settings the lane generator cannot honor.
func (c CrossyConfig) Validate() error {
	l, f, t := c.Lanes, c.Forest, c.Traffic
	width := l.MaxTile - l.MinTile + 1
	switch {
	case width < 3:
		return fmt.Errorf("config: lanes: tile range [%d, %d] is too narrow", l.MinTile, l.MaxTile)
	case l.Initial <= 0 || l.Batch <= 0:
		return fmt.Errorf("config: lanes: initial and batch must be positive")
	case l.RowsAheadThreshold <= 0 || l.RowsAheadThreshold >= l.Initial:
		return fmt.Errorf("config: lanes: rows_ahead_threshold must be in (0, initial)")
	case l.Weights.Total() <= 0:
		return fmt.Errorf("config: lanes: weights must sum to a positive value")
	case f.MinTrees < 0 || f.MaxTrees < f.MinTrees || f.MaxTrees >= width:
		return fmt.Errorf("config: forest: trees must satisfy 0 <= min <= max < %d", width)
	case f.MinHeight <= 0 || f.MaxHeight < f.MinHeight:
		return fmt.Errorf("config: forest: invalid tree heights")
	case t.MinSpeed <= 0 || t.MaxSpeed < t.MinSpeed:
		return fmt.Errorf("config: traffic: invalid speed range")
	case t.MinSegments < MinSegmentsPerLane || t.MaxSegments > MaxSegmentsPerLane || t.MaxSegments < t.MinSegments:
		return fmt.Errorf("config: traffic: segments must satisfy %d <= min <= max <= %d", MinSegmentsPerLane, MaxSegmentsPerLane)
	case width < 2*t.MaxSegments:
		return fmt.Errorf("config: traffic: %d segments do not fit %d tiles", t.MaxSegments, width)
	case t.MinLogLength <= 0 || t.MaxLogLength < t.MinLogLength:
		return fmt.Errorf("config: traffic: invalid log length range")
	case t.WrapPadding < 0:
		return fmt.Errorf("config: traffic: wrap_padding must not be negative")
	}
	return nil
}

// ApplyCrossyPreset modifies the config based on a difficulty preset.
func ApplyCrossyPreset(cfg *CrossyConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust generation based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Forest.CornChance = 0.5
		cfg.Lanes.Weights.Grass += 0.1
	case DifficultyHard:
		cfg.Forest.CornChance = 0.2
		cfg.Traffic.MinSegments = min(cfg.Traffic.MinSegments+1, cfg.Traffic.MaxSegments)
	}
}
