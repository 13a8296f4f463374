package sim

// Tuning carries every balance constant the engine consults. It is resolved
// once (from the difficulty tier) and passed explicitly; the engine never
// reads ambient configuration.
type Tuning struct {
	StartMeters  int `yaml:"start_meters" json:"start_meters"`
	StartFavor   int `yaml:"start_favor" json:"start_favor"`
	StartCapital int `yaml:"start_capital" json:"start_capital"`

	CapitalMax            int `yaml:"capital_max" json:"capital_max"`
	CapitalDecayThreshold int `yaml:"capital_decay_threshold" json:"capital_decay_threshold"`

	HandSize           int `yaml:"hand_size" json:"hand_size"`
	MaxCardsPerQuarter int `yaml:"max_cards_per_quarter" json:"max_cards_per_quarter"`

	// CrisisChance is the percent chance a crisis is pre-selected each
	// quarter during the Demand phase.
	CrisisChance int `yaml:"crisis_chance" json:"crisis_chance"`

	// BaseOpsProfit is the baseline quarterly profit of ordinary operations,
	// in millions, before meter and organic-growth adjustments.
	BaseOpsProfit int `yaml:"base_ops_profit" json:"base_ops_profit"`

	// DirectiveFloor is the minimum quarterly profit target the board sets.
	DirectiveFloor int `yaml:"directive_floor" json:"directive_floor"`

	RetirementThreshold int `yaml:"retirement_threshold" json:"retirement_threshold"`

	QueueCapacity     int `yaml:"queue_capacity" json:"queue_capacity"`
	MaxDeferCount     int `yaml:"max_defer_count" json:"max_defer_count"`
	FollowUpExpiry    int `yaml:"follow_up_expiry" json:"follow_up_expiry"` // quarters until a dormant follow-up lapses
	ProfitHistorySize int `yaml:"profit_history_size" json:"profit_history_size"`
}

// DefaultTuning returns the normal-difficulty balance constants.
func DefaultTuning() Tuning {
	return Tuning{
		StartMeters:           50,
		StartFavor:            50,
		StartCapital:          3,
		CapitalMax:            10,
		CapitalDecayThreshold: 5,
		HandSize:              4,
		MaxCardsPerQuarter:    3,
		CrisisChance:          55,
		BaseOpsProfit:         10,
		DirectiveFloor:        8,
		RetirementThreshold:   100,
		QueueCapacity:         5,
		MaxDeferCount:         3,
		FollowUpExpiry:        4,
		ProfitHistorySize:     8,
	}
}

// NewState builds the quarter-1 initial state for a fresh run.
func NewState(tun Tuning) State {
	return State{
		Quarter: 1,
		Phase:   PhaseDemand,
		Meters: Meters{
			Delivery:   tun.StartMeters,
			Morale:     tun.StartMeters,
			Governance: tun.StartMeters,
			Alignment:  tun.StartMeters,
			Runway:     tun.StartMeters,
		},
		Tenure: Tenure{
			Favor: tun.StartFavor,
		},
		Capital:      tun.StartCapital,
		LastAffinity: MeterNone,
	}
}
