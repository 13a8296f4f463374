// Package sim implements the deterministic quarterly simulation core: an
// immutable value model, a four-phase state machine, probability-weighted
// outcome resolution, a political-capital economy, a deferred situation
// queue, and the board favorability/survival calculus.
//
// The package performs no I/O and emits no text. Every transition is a pure
// function of (state, input, random source); callers own rendering,
// persistence and content loading.
package sim

// Meter identifies one of the five organizational health metrics.
type Meter int

const (
	MeterDelivery Meter = iota
	MeterMorale
	MeterGovernance
	MeterAlignment
	MeterRunway

	// MeterNone marks the absence of a meter reference (e.g. no card played
	// yet this quarter).
	MeterNone Meter = -1
)

// meterCount is the number of real meters.
const meterCount = 5

// String returns the meter's identifier for logs and storage.
func (m Meter) String() string {
	switch m {
	case MeterDelivery:
		return "delivery"
	case MeterMorale:
		return "morale"
	case MeterGovernance:
		return "governance"
	case MeterAlignment:
		return "alignment"
	case MeterRunway:
		return "runway"
	default:
		return "none"
	}
}

// Meters holds the five organization meters, each clamped to [0, 100].
type Meters struct {
	Delivery   int `json:"delivery"`
	Morale     int `json:"morale"`
	Governance int `json:"governance"`
	Alignment  int `json:"alignment"`
	Runway     int `json:"runway"`
}

// Get returns the value of the given meter.
func (ms Meters) Get(m Meter) int {
	switch m {
	case MeterDelivery:
		return ms.Delivery
	case MeterMorale:
		return ms.Morale
	case MeterGovernance:
		return ms.Governance
	case MeterAlignment:
		return ms.Alignment
	case MeterRunway:
		return ms.Runway
	default:
		return 0
	}
}

// With returns a copy with the given meter shifted by delta, clamped to
// [0, 100]. The clamp runs on every mutation; no meter is ever observed
// outside that range.
func (ms Meters) With(m Meter, delta int) Meters {
	v := clamp(ms.Get(m)+delta, 0, 100)
	switch m {
	case MeterDelivery:
		ms.Delivery = v
	case MeterMorale:
		ms.Morale = v
	case MeterGovernance:
		ms.Governance = v
	case MeterAlignment:
		ms.Alignment = v
	case MeterRunway:
		ms.Runway = v
	}
	return ms
}

// Average returns the mean of the five meters.
func (ms Meters) Average() int {
	return (ms.Delivery + ms.Morale + ms.Governance + ms.Alignment + ms.Runway) / meterCount
}

// Lowest returns the smallest meter value.
func (ms Meters) Lowest() int {
	low := ms.Delivery
	for _, m := range []Meter{MeterMorale, MeterGovernance, MeterAlignment, MeterRunway} {
		if v := ms.Get(m); v < low {
			low = v
		}
	}
	return low
}

// Phase is the position inside the quarterly cycle.
type Phase int

const (
	PhaseDemand Phase = iota
	PhasePlayCards
	PhaseCrisis
	PhaseResolution
)

// String returns the phase identifier.
func (p Phase) String() string {
	switch p {
	case PhaseDemand:
		return "demand"
	case PhasePlayCards:
		return "play_cards"
	case PhaseCrisis:
		return "crisis"
	case PhaseResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// next returns the following phase in the Demand -> PlayCards -> Crisis ->
// Resolution -> Demand cycle.
func (p Phase) next() Phase {
	return (p + 1) % 4
}

// Tenure tracks the executive's career: survival counters, board standing
// and the moral ledger. It is mutated only by the engine at resolution time
// and becomes immutable once a terminal flag is set.
type Tenure struct {
	QuartersSurvived int   `json:"quarters_survived"`
	Favor            int   `json:"favor"` // board favorability, 0..100
	TotalProfit      int   `json:"total_profit"`
	EvilScore        int   `json:"evil_score"`
	LastProfit       int   `json:"last_profit"`
	ProfitHistory    []int `json:"profit_history"` // bounded sliding window, oldest first
	SuccessStreak    int   `json:"success_streak"`
	NegativeStreak   int   `json:"negative_streak"`
	WeakStreak       int   `json:"weak_streak"` // consecutive weak (Bad) projects
	RetireBonus      int   `json:"retire_bonus"`
	Ousted           bool  `json:"ousted"`
	Retired          bool  `json:"retired"`
}

// Pressure returns the board-pressure level derived from tenure:
// floor(quarters/2), capped.
func (t Tenure) Pressure() int {
	p := t.QuartersSurvived / 2
	if p > pressureCap {
		p = pressureCap
	}
	return p
}

// Terminal reports whether the run has ended.
func (t Tenure) Terminal() bool {
	return t.Ousted || t.Retired
}

// pressureCap is the highest board-pressure level.
const pressureCap = 8

// Directive is the board's quarterly profit target, in millions.
type Directive struct {
	Target int `json:"target"`
}

// State is the full immutable value model. It is the save format: every
// field serializes losslessly and nothing in it is derived-only.
type State struct {
	Quarter int    `json:"quarter"` // 1-based
	Phase   Phase  `json:"phase"`
	Meters  Meters `json:"meters"`
	Tenure  Tenure `json:"tenure"`

	// Capital is the political-capital balance, clamped [0, max].
	Capital int `json:"capital"`

	Directive Directive `json:"directive"`

	// Per-quarter working set, reset at Resolution.
	Hand          []string `json:"hand"`
	PendingCrisis string   `json:"pending_crisis,omitempty"` // crisis id bound for this quarter
	CrisisFrom    string   `json:"crisis_from,omitempty"`    // situation id that escalated, if any
	CardsPlayed   int      `json:"cards_played"`
	LastAffinity  Meter    `json:"last_affinity"`
	QuarterProfit int      `json:"quarter_profit"` // project/crisis profit impact, millions
	QuarterFines  int      `json:"quarter_fines"`

	// Pending fires this quarter; Deferred is the bounded future queue.
	Pending  []Situation `json:"pending,omitempty"`
	Deferred []Situation `json:"deferred,omitempty"`
}

// Terminal reports whether this state can no longer advance.
func (st State) Terminal() bool {
	return st.Tenure.Terminal()
}

// CanAfford reports whether the capital balance covers the given cost.
func (st State) CanAfford(cost int) bool {
	return cost <= st.Capital
}

// HasCard reports whether the given card id is in hand.
func (st State) HasCard(id string) bool {
	for _, c := range st.Hand {
		if c == id {
			return true
		}
	}
	return false
}

// withoutCard returns a copy of the hand with one card removed. The original
// slice is never mutated; shared deck aliasing is exactly the bug this
// discipline avoids.
func withoutCard(hand []string, id string) []string {
	out := make([]string, 0, len(hand))
	for _, c := range hand {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}

// pushProfit appends a quarterly profit to the bounded window, evicting the
// oldest entry.
func pushProfit(history []int, profit, size int) []int {
	out := make([]int, 0, size)
	out = append(out, history...)
	out = append(out, profit)
	if len(out) > size {
		out = out[len(out)-size:]
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
