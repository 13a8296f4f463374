package config

import (
	_ "embed"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

//go:embed defaults/tiers.yaml
var defaultTiersYAML []byte

// DefaultTiers returns the hardcoded tier table, used when no YAML source
// is available at all.
func DefaultTiers() Tiers {
	normal := sim.DefaultTuning()

	easy := normal
	easy.StartCapital = 5
	easy.StartFavor = 60
	easy.CrisisChance = 40
	easy.BaseOpsProfit = 12
	easy.RetirementThreshold = 80

	hard := normal
	hard.StartCapital = 2
	hard.StartFavor = 40
	hard.CrisisChance = 70
	hard.BaseOpsProfit = 8
	hard.RetirementThreshold = 120
	hard.MaxCardsPerQuarter = 2

	return Tiers{Easy: easy, Normal: normal, Hard: hard}
}
