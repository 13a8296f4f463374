package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

// Load reads the difficulty tier table.
// Search order: customPath -> ~/.inerticorp/configs/tiers.yaml ->
// ./configs/tiers.yaml -> embedded default.
func Load(customPath string) (Tiers, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Tiers{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		return parse(data)
	}

	if userPath := userConfigPath("tiers.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if tiers, err := parse(data); err == nil {
				return tiers, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/tiers.yaml"); err == nil {
		if tiers, err := parse(data); err == nil {
			return tiers, nil
		}
	}

	tiers, err := parse(defaultTiersYAML)
	if err != nil {
		// Embedded table broken: fall back to the hardcoded one.
		return DefaultTiers(), nil
	}
	return tiers, nil
}

// parse decodes and sanity-checks a tier table.
func parse(data []byte) (Tiers, error) {
	var tiers Tiers
	if err := yaml.Unmarshal(data, &tiers); err != nil {
		return Tiers{}, fmt.Errorf("config: cannot parse tiers: %w", err)
	}
	for _, pair := range []struct {
		name Preset
		tun  sim.Tuning
	}{
		{PresetEasy, tiers.Easy},
		{PresetNormal, tiers.Normal},
		{PresetHard, tiers.Hard},
	} {
		if err := validate(pair.tun); err != nil {
			return Tiers{}, fmt.Errorf("config: tier %s: %w", pair.name, err)
		}
	}
	return tiers, nil
}

// validate rejects tunings that would stall or divide the engine by zero.
func validate(t sim.Tuning) error {
	switch {
	case t.CapitalMax <= 0:
		return fmt.Errorf("capital_max must be positive")
	case t.HandSize <= 0:
		return fmt.Errorf("hand_size must be positive")
	case t.MaxCardsPerQuarter <= 0:
		return fmt.Errorf("max_cards_per_quarter must be positive")
	case t.CrisisChance < 0 || t.CrisisChance > 100:
		return fmt.Errorf("crisis_chance must be a percentage")
	case t.QueueCapacity <= 0:
		return fmt.Errorf("queue_capacity must be positive")
	case t.MaxDeferCount < 0:
		return fmt.Errorf("max_defer_count must be non-negative")
	case t.FollowUpExpiry <= 0:
		return fmt.Errorf("follow_up_expiry must be positive")
	case t.ProfitHistorySize <= 0:
		return fmt.Errorf("profit_history_size must be positive")
	case t.RetirementThreshold <= 0:
		return fmt.Errorf("retirement_threshold must be positive")
	}
	return nil
}

// userConfigPath returns the path under the user's config directory, or
// empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".inerticorp", "configs", filename)
}
