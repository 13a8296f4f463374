package sim

import "github.com/justinbroadbent/inerticorp/internal/rng"

// maxWeight is the saturating cap on any single tier weight after modifiers.
// Without it, stacked bonuses could push one tier past a 100% effective
// share or drive another negative.
const maxWeight = 90

// Modifiers are the independent integer adjustments folded into a base
// weight profile before the roll. All values may be negative except
// PositionRisk, which only ever worsens the Bad weight.
type Modifiers struct {
	PositionRisk int // later cards in the quarter are riskier
	Affinity     int // health of the card's affinity meter
	Momentum     int // consecutive-success bonus
	Synergy      int // matching affinity with the previous card this quarter
	EvilPath     int // active only above the evil-score threshold
	Honeymoon    int // early-game adjustment
}

// Combine folds the modifiers into base weights in a fixed, documented
// order: Good takes affinity, momentum, synergy, evil path and honeymoon;
// Bad takes position risk and sheds the honeymoon adjustment; Expected is
// untouched. Each final weight is clamped to [0, maxWeight].
func (m Modifiers) Combine(base Weights) Weights {
	return Weights{
		Good:     clamp(base.Good+m.Affinity+m.Momentum+m.Synergy+m.EvilPath+m.Honeymoon, 0, maxWeight),
		Expected: clamp(base.Expected, 0, maxWeight),
		Bad:      clamp(base.Bad+m.PositionRisk-m.Honeymoon, 0, maxWeight),
	}
}

// Resolve selects an outcome tier with a single integer draw over the
// combined weight sum. A zero weight sum degrades to Expected. The function
// is pure given its inputs and the one draw.
func Resolve(base Weights, m Modifiers, src rng.Source) Tier {
	w := m.Combine(base)
	sum := w.Good + w.Expected + w.Bad
	if sum <= 0 {
		return TierExpected
	}
	roll := src.Intn(sum)
	switch {
	case roll < w.Good:
		return TierGood
	case roll < w.Good+w.Expected:
		return TierExpected
	default:
		return TierBad
	}
}

// Crisis baseline weight tables per choice kind. Capital-spend responses
// skew heavily favorable, standard responses are heavily Expected, and
// corporate responses are high-variance.
var crisisWeightTables = map[ChoiceKind]Weights{
	ChoiceCapital:   {Good: 60, Expected: 35, Bad: 5},
	ChoiceStandard:  {Good: 15, Expected: 70, Bad: 15},
	ChoiceCorporate: {Good: 40, Expected: 20, Bad: 40},
}

// CrisisWeights returns the baseline profile for a crisis choice kind.
func CrisisWeights(kind ChoiceKind) Weights {
	return crisisWeightTables[kind]
}

// Modifier building blocks shared by card and crisis rolls.

const (
	affinityHighThreshold = 60
	affinityLowThreshold  = 30
	affinityBonus         = 8
	momentumPerSuccess    = 3
	momentumStreakCap     = 3
	synergyBonus          = 5
	evilPathThreshold     = 40
	evilPathBonus         = 5
	honeymoonQuarters     = 2
	honeymoonBonus        = 5
)

// affinityModifier rewards a healthy affinity meter and punishes a starved
// one.
func affinityModifier(ms Meters, m Meter) int {
	if m == MeterNone {
		return 0
	}
	v := ms.Get(m)
	switch {
	case v >= affinityHighThreshold:
		return affinityBonus
	case v < affinityLowThreshold:
		return -affinityBonus
	default:
		return 0
	}
}

// momentumModifier converts the consecutive-success streak into a bonus.
func momentumModifier(successStreak int) int {
	if successStreak > momentumStreakCap {
		successStreak = momentumStreakCap
	}
	return successStreak * momentumPerSuccess
}

// synergyModifier rewards stacking projects on the same meter within one
// quarter.
func synergyModifier(last, current Meter) int {
	if last != MeterNone && last == current {
		return synergyBonus
	}
	return 0
}

// evilPathModifier is active only above the evil-score threshold.
func evilPathModifier(evil int) int {
	if evil >= evilPathThreshold {
		return evilPathBonus
	}
	return 0
}

// honeymoonModifier softens the first quarters of a tenure.
func honeymoonModifier(quartersSurvived int) int {
	if quartersSurvived < honeymoonQuarters {
		return honeymoonBonus
	}
	return 0
}

// positionRisk worsens the Bad weight for each card beyond the first in a
// quarter: the first play is free and safest, later plays cost more and
// risk more.
func positionRisk(position int) int {
	return position * 5
}

// PositionCost is the political-capital surcharge for the nth card this
// quarter (0-indexed).
func PositionCost(position int) int {
	if position > 2 {
		position = 2
	}
	return position
}
