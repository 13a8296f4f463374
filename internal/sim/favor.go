package sim

import "github.com/justinbroadbent/inerticorp/internal/rng"

// Favorability reward/penalty table. All adjustments are additive and run
// in a fixed order: classification, base reward, evil penalty, weak-streak
// penalty, streak-dependent gain cap, critical-meter check, low-activity
// check, final loss clamp.
const (
	fullSuccessBaseEarly    = 10 // tenure < 4 quarters
	partialSuccessBaseEarly = 5
	earlyTenureQuarters     = 4

	evilPenaltyThreshold  = 50
	evilPenaltyHeavy      = 100
	weakStreakPenaltyStep = 2

	directiveFailPenalty = 3
	profitDeclinePenalty = 2
	evilScrutinyPenalty  = 3

	maxLossEarly       = 15 // tenure < 8 quarters
	maxLossLate        = 20
	lateTenureQuarters = 8

	meterHardThreshold = 10
	meterHardPenalty   = 3
	meterSoftThreshold = 25
)

// FavorInput is everything the favorability calculation reads. Passing it
// explicitly keeps the function testable with arbitrary configurations.
type FavorInput struct {
	LastProfit       int
	Profit           int
	DirectiveMet     bool
	Pressure         int
	Evil             int
	WeakStreak       int
	SuccessStreak    int
	QuartersSurvived int
	CardsPlayed      int
	Meters           Meters
}

// FavorabilityDelta converts a quarter's results into the board's
// favorability adjustment. Pure and RNG-free; the survival roll is a
// separate single draw.
func FavorabilityDelta(in FavorInput) int {
	var delta int

	switch {
	case in.DirectiveMet && in.Profit > in.LastProfit:
		// Full success: pressure/tenure-scaled base, then penalties.
		base := fullSuccessBaseEarly
		if in.QuartersSurvived >= earlyTenureQuarters {
			base = maxInt(3, fullSuccessBaseEarly-in.Pressure)
		}
		delta = base - evilPenalty(in.Evil) - weakStreakPenaltyStep*in.WeakStreak

	case in.DirectiveMet:
		// Partial success: directive met but profit flat or declined.
		base := partialSuccessBaseEarly
		if in.QuartersSurvived >= earlyTenureQuarters {
			base = maxInt(2, partialSuccessBaseEarly-in.Pressure/2)
		}
		delta = base - evilPenalty(in.Evil) - weakStreakPenaltyStep*in.WeakStreak

	default:
		// Failure path: penalties accumulate, then clamp to the
		// tenure-scaled maximum loss.
		if in.Profit < 0 {
			delta -= 4 + minInt(8, -in.Profit/5)
		} else if in.Profit < in.LastProfit {
			delta -= profitDeclinePenalty
		}
		delta -= directiveFailPenalty
		delta -= in.Pressure
		if in.Profit <= 0 && in.Evil >= evilPenaltyThreshold {
			delta -= evilScrutinyPenalty
		}
	}

	// Streak-dependent cap on gains: the board expects sustained winners
	// to keep winning.
	if delta > 0 {
		delta = minInt(delta, maxGainForStreak(in.SuccessStreak))
	}

	// Critical meters override gains outright.
	low := in.Meters.Lowest()
	switch {
	case low < meterHardThreshold:
		if delta > 0 {
			delta = 0
		}
		delta -= meterHardPenalty
	case low < meterSoftThreshold:
		if delta > 0 {
			delta = 0
		}
	}

	// Low activity: fewer projects than tenure-scaled expectations.
	expected := expectedProjects(in.QuartersSurvived)
	if in.CardsPlayed < expected {
		shortfall := expected - in.CardsPlayed
		delta -= shortfall * (1 + in.QuartersSurvived/8)
	}
	if in.CardsPlayed == 0 && delta > 0 {
		delta = 0
	}

	// Final clamp on losses.
	maxLoss := maxLossEarly
	if in.QuartersSurvived >= lateTenureQuarters {
		maxLoss = maxLossLate
	}
	if delta < -maxLoss {
		delta = -maxLoss
	}
	return delta
}

// evilPenalty kicks in only at high evil-score thresholds.
func evilPenalty(evil int) int {
	switch {
	case evil >= evilPenaltyHeavy:
		return 4
	case evil >= evilPenaltyThreshold:
		return 2
	default:
		return 0
	}
}

// maxGainForStreak caps a quarter's gain by the consecutive-success streak.
func maxGainForStreak(streak int) int {
	if streak > 4 {
		streak = 4
	}
	return 12 - 2*streak
}

// expectedProjects is the board's tenure-scaled activity expectation.
func expectedProjects(quartersSurvived int) int {
	switch {
	case quartersSurvived < 4:
		return 1
	case quartersSurvived < 12:
		return 2
	default:
		return 3
	}
}

// OusterChance converts the quarter's standing into a termination
// probability in percent, clamped to [0, 95].
func OusterChance(in FavorInput, favor, negativeStreak int) int {
	var chance int
	switch {
	case favor >= 60:
		chance = 0
	case favor >= 40:
		chance = 5
	case favor >= 25:
		chance = 15
	default:
		chance = 35
	}
	if !in.DirectiveMet {
		chance += in.Pressure * 2
	}
	chance += negativeStreak * 5
	if in.Evil >= evilPenaltyHeavy && in.Profit < 0 {
		chance += 10
	}
	if in.QuartersSurvived < honeymoonQuarters {
		chance /= 2
	}
	return clamp(chance, 0, 95)
}

// survivalRoll is the quarter's single continued-employment draw. It always
// consumes exactly one draw, even at zero chance, so the RNG stream stays
// identical across replays regardless of the standing that quarter.
func survivalRoll(chance int, src rng.Source) bool {
	return src.Intn(100) >= chance
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
