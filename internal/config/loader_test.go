package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

func TestEmbeddedTiersValid(t *testing.T) {
	tiers, err := parse(defaultTiersYAML)
	if err != nil {
		t.Fatalf("parse(default): %v", err)
	}

	// Easier tiers should not be strictly harder than harder ones.
	if tiers.Easy.CrisisChance > tiers.Hard.CrisisChance {
		t.Errorf("easy crisis chance %d exceeds hard %d",
			tiers.Easy.CrisisChance, tiers.Hard.CrisisChance)
	}
	if tiers.Easy.StartCapital < tiers.Hard.StartCapital {
		t.Errorf("easy start capital %d below hard %d",
			tiers.Easy.StartCapital, tiers.Hard.StartCapital)
	}
	for _, p := range Presets() {
		tun := tiers.ForPreset(p)
		if tun.HandSize <= 0 || tun.CapitalMax <= 0 {
			t.Errorf("tier %s has degenerate tuning: %+v", p, tun)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	custom := DefaultTiers()
	custom.Hard.CrisisChance = 90
	data, err := yaml.Marshal(custom)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tiers, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tiers.Hard.CrisisChance != 90 {
		t.Errorf("Hard.CrisisChance = %d, want 90", tiers.Hard.CrisisChance)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load accepted a missing custom path")
	}
}

func TestParseRejectsDegenerateTiers(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Tiers)
		wantErr string
	}{
		{"zero hand", func(t *Tiers) { t.Normal.HandSize = 0 }, "hand_size"},
		{"zero capital max", func(t *Tiers) { t.Easy.CapitalMax = 0 }, "capital_max"},
		{"crisis chance over 100", func(t *Tiers) { t.Hard.CrisisChance = 101 }, "crisis_chance"},
		{"zero queue", func(t *Tiers) { t.Normal.QueueCapacity = 0 }, "queue_capacity"},
		{"negative defer count", func(t *Tiers) { t.Normal.MaxDeferCount = -1 }, "max_defer_count"},
		{"zero retirement", func(t *Tiers) { t.Easy.RetirementThreshold = 0 }, "retirement_threshold"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tiers := DefaultTiers()
			tc.mutate(&tiers)
			data, err := yaml.Marshal(tiers)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := parse(data); err == nil {
				t.Fatal("parse accepted a degenerate tier table")
			} else if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("err = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestPresetHelpers(t *testing.T) {
	if !PresetNormal.Valid() || Preset("brutal").Valid() {
		t.Error("preset validity check wrong")
	}

	tiers := Tiers{
		Easy:   sim.Tuning{CrisisChance: 1},
		Normal: sim.Tuning{CrisisChance: 2},
		Hard:   sim.Tuning{CrisisChance: 3},
	}
	if got := tiers.ForPreset(PresetHard).CrisisChance; got != 3 {
		t.Errorf("hard = %d, want 3", got)
	}
	// Unknown presets resolve to normal.
	if got := tiers.ForPreset(Preset("brutal")).CrisisChance; got != 2 {
		t.Errorf("fallback = %d, want 2", got)
	}
}
