package sim

// Political capital is the single currency gating high-value actions. The
// balance stays in [0, max]; spends are atomic and earns are clamped.

// spendCapital deducts cost or fails without touching the state.
func spendCapital(st State, cost int) (State, error) {
	if cost > st.Capital {
		return st, ErrInsufficientCapital
	}
	st.Capital -= cost
	return st, nil
}

// earnCapital credits delta, clamped to the configured maximum.
func earnCapital(st State, delta, max int) State {
	st.Capital = clamp(st.Capital+delta, 0, max)
	return st
}

// restraintBonus rewards playing fewer cards per quarter: 3/2/1/0 capital
// for 0/1/2/3+ plays. An explicit anti-spam incentive.
func restraintBonus(cardsPlayed int) int {
	switch cardsPlayed {
	case 0:
		return 3
	case 1:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

const (
	capitalGovernanceThreshold = 60
	capitalAlignmentThreshold  = 60
	capitalMoraleThreshold     = 30
)

// quarterCapitalAdjustment is the end-of-quarter rule: +1 for governance
// >= 60, +1 for alignment >= 60, -1 for morale < 30, -1 decay once the
// balance sits above the decay threshold, plus the restraint bonus. The
// summed delta is applied once and clamped by the caller.
func quarterCapitalAdjustment(st State, tun Tuning) int {
	delta := restraintBonus(st.CardsPlayed)
	if st.Meters.Governance >= capitalGovernanceThreshold {
		delta++
	}
	if st.Meters.Alignment >= capitalAlignmentThreshold {
		delta++
	}
	if st.Meters.Morale < capitalMoraleThreshold {
		delta--
	}
	if st.Capital > tun.CapitalDecayThreshold {
		delta--
	}
	return delta
}

// exchangeFloor is the minimum a meter must retain after trading points
// away for capital.
const exchangeFloor = 20

// exchangeCosts is the meter price of 1 capital, per meter. Cheap meters
// are the ones a desperate executive burns first.
var exchangeCosts = map[Meter]int{
	MeterDelivery:   15,
	MeterMorale:     10,
	MeterGovernance: 20,
	MeterAlignment:  15,
	MeterRunway:     20,
}

// ExchangeCost returns the meter points traded for 1 capital.
func ExchangeCost(m Meter) int {
	return exchangeCosts[m]
}

// canExchange reports whether the meter can fund an exchange and the
// balance has room for the credit.
func canExchange(st State, m Meter, tun Tuning) bool {
	cost, ok := exchangeCosts[m]
	if !ok {
		return false
	}
	return st.Meters.Get(m)-cost >= exchangeFloor && st.Capital < tun.CapitalMax
}
