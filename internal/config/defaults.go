package config

import (
	_ "embed"
)

//go:embed defaults/ghostgrid.yaml
var defaultGhostGridYAML []byte

// DefaultGhostGridConfig returns the built-in configuration.
func DefaultGhostGridConfig() GhostGridConfig {
	return GhostGridConfig{
		Movement: MovementConfig{
			Cooldown:      0.3,
			ClampDiagonal: false,
		},
		Scoring: ScoringConfig{
			ShapePoints: 100,
			MoveBonus:   10,
		},
		Display: DisplayConfig{
			CellWidth:    3,
			Checkerboard: true,
			ShowHints:    true,
			Theme:        "default",
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// normalize replaces out-of-range values with defaults.
func (c *GhostGridConfig) normalize() {
	def := DefaultGhostGridConfig()
	if c.Movement.Cooldown <= 0 {
		c.Movement.Cooldown = def.Movement.Cooldown
	}
	if c.Display.CellWidth < 1 {
		c.Display.CellWidth = def.Display.CellWidth
	}
	if c.Display.Theme == "" {
		c.Display.Theme = def.Display.Theme
	}
	if c.Scoring.ShapePoints < 0 {
		c.Scoring.ShapePoints = 0
	}
	if c.Scoring.MoveBonus < 0 {
		c.Scoring.MoveBonus = 0
	}
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil || c.Difficulty.Preset == "" {
		c.Difficulty.Preset = def.Difficulty.Preset
	}
}
