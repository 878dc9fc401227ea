package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name is allowed and keeps the
// configured difficulty.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// GameTimeForPreset returns the starting difficulty scalar and drift rate for
// a preset. ok is false for presets that keep the configured scalar.
func GameTimeForPreset(preset DifficultyPreset) (gameTime, rate float64, ok bool) {
	switch preset {
	case DifficultyEasy:
		return 12, 0, true
	case DifficultyNormal:
		return 20, 0, true
	case DifficultyHard:
		return 30, 0.25, true
	default:
		return 0, 0, false
	}
}

// IsFixedPreset returns true if the preset disables drift.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RingshotConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Rate = 0
		return
	}
	if gt, rate, ok := GameTimeForPreset(preset); ok {
		cfg.Difficulty.GameTime = gt
		cfg.Difficulty.Rate = rate
	}
}
