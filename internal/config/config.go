// Package config provides YAML-based game configuration loading and
// difficulty presets for ghostgrid.
package config

// GhostGridConfig contains all tunable settings for the puzzle.
type GhostGridConfig struct {
	Movement   MovementConfig   `yaml:"movement"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MovementConfig controls turn gating and input quantization.
type MovementConfig struct {
	Cooldown      float64 `yaml:"cooldown"`       // Seconds between turns
	ClampDiagonal bool    `yaml:"clamp_diagonal"` // Keep only the dominant input axis
}

// ScoringConfig defines how a solved level is scored.
type ScoringConfig struct {
	ShapePoints int `yaml:"shape_points"` // Points per completed shape
	MoveBonus   int `yaml:"move_bonus"`   // Points per unused move under the limit
}

// DisplayConfig defines rendering parameters.
type DisplayConfig struct {
	CellWidth    int    `yaml:"cell_width"`   // Terminal columns per grid cell
	Checkerboard bool   `yaml:"checkerboard"` // Shade alternate tiles
	ShowHints    bool   `yaml:"show_hints"`   // Show the level hint under the board
	Theme        string `yaml:"theme"`        // Menu theme: default or mono
}

// DifficultyConfig selects how the level move limit is applied.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}
