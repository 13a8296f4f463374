// Package config provides YAML-based difficulty-tier loading for the
// simulation. A tier resolves to a sim.Tuning value that is passed
// explicitly into the engine; nothing in the core reads configuration
// ambiently.
package config

import "github.com/justinbroadbent/inerticorp/internal/sim"

// Tiers holds the tuning for each difficulty preset.
type Tiers struct {
	Easy   sim.Tuning `yaml:"easy"`
	Normal sim.Tuning `yaml:"normal"`
	Hard   sim.Tuning `yaml:"hard"`
}

// Preset names a difficulty tier.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Valid reports whether the preset name is known.
func (p Preset) Valid() bool {
	switch p {
	case PresetEasy, PresetNormal, PresetHard:
		return true
	}
	return false
}

// ForPreset resolves a preset to its tuning. Unknown presets fall back to
// normal.
func (t Tiers) ForPreset(p Preset) sim.Tuning {
	switch p {
	case PresetEasy:
		return t.Easy
	case PresetHard:
		return t.Hard
	default:
		return t.Normal
	}
}

// Presets lists the known preset names in display order.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard}
}
