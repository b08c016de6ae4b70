package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyRelaxed DifficultyPreset = "relaxed"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyStrict  DifficultyPreset = "strict"
)

// Presets lists the presets in ascending difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyRelaxed, DifficultyNormal, DifficultyStrict}
}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyRelaxed, DifficultyNormal, DifficultyStrict:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want relaxed, normal or strict)", s)
	}
}

// MoveLimit applies the preset to a level's move limit. A level limit of 0
// stays unlimited under every preset.
//
//	relaxed - no limit
//	normal  - the level's limit
//	strict  - three quarters of the limit, rounded up
func (p DifficultyPreset) MoveLimit(levelLimit int) int {
	if levelLimit <= 0 {
		return 0
	}
	switch p {
	case DifficultyRelaxed:
		return 0
	case DifficultyStrict:
		return int(math.Ceil(float64(levelLimit) * 0.75))
	default:
		return levelLimit
	}
}

// ApplyPreset stores the preset in the config.
func ApplyPreset(cfg *GhostGridConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}

// Score returns the points for a solved level: a fixed amount per shape
// plus a bonus for every move left under the limit. Unlimited levels earn
// no bonus.
func (s ScoringConfig) Score(shapes, moves, limit int) int {
	score := shapes * s.ShapePoints
	if limit > 0 && moves < limit {
		score += (limit - moves) * s.MoveBonus
	}
	return score
}
