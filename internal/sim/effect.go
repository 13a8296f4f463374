package sim

// EffectKind tags the closed set of effect variants.
type EffectKind int

const (
	// EffectMeter shifts exactly one meter, clamped.
	EffectMeter EffectKind = iota
	// EffectProfit adjusts the quarter's profit impact, in millions.
	EffectProfit
	// EffectFine deducts a non-negative amount, in millions, from the
	// quarter's financial result.
	EffectFine
)

// String returns the effect-kind identifier.
func (k EffectKind) String() string {
	switch k {
	case EffectMeter:
		return "meter"
	case EffectProfit:
		return "profit"
	case EffectFine:
		return "fine"
	default:
		return "unknown"
	}
}

// Effect is pure data. Applying one is a deterministic transform with no
// RNG use; any randomness was consumed earlier, during tier selection.
type Effect struct {
	Kind   EffectKind `yaml:"kind" json:"kind"`
	Meter  Meter      `yaml:"meter" json:"meter,omitempty"`
	Delta  int        `yaml:"delta" json:"delta,omitempty"`
	Amount int        `yaml:"amount" json:"amount,omitempty"` // millions
}

// MeterEffect builds a meter-delta effect.
func MeterEffect(m Meter, delta int) Effect {
	return Effect{Kind: EffectMeter, Meter: m, Delta: delta}
}

// ProfitEffect builds a profit-delta effect.
func ProfitEffect(amount int) Effect {
	return Effect{Kind: EffectProfit, Amount: amount}
}

// FineEffect builds a fine effect.
func FineEffect(amount int) Effect {
	return Effect{Kind: EffectFine, Amount: amount}
}

// applyEffects runs the two-stage effect pipeline: meter effects mutate the
// working state directly, while profit and fine effects are only collected
// here and folded into the quarter's financials at Resolution. Folding them
// per-effect would double-count against the favorability calculators, which
// need the aggregated quarter totals.
func applyEffects(st State, ref string, effs []Effect) (State, []LogEntry) {
	var entries []LogEntry
	for _, ef := range effs {
		switch ef.Kind {
		case EffectMeter:
			before := st.Meters.Get(ef.Meter)
			st.Meters = st.Meters.With(ef.Meter, ef.Delta)
			entries = append(entries, LogEntry{
				Kind:    LogMeterChange,
				Code:    CodeMeterChange,
				Quarter: st.Quarter,
				Ref:     ref,
				Meter:   ef.Meter,
				Delta:   st.Meters.Get(ef.Meter) - before,
			})
		case EffectProfit:
			st.QuarterProfit += ef.Amount
			entries = append(entries, LogEntry{
				Kind:    LogEvent,
				Code:    CodeProfitImpact,
				Quarter: st.Quarter,
				Ref:     ref,
				Amount:  ef.Amount,
			})
		case EffectFine:
			st.QuarterFines += ef.Amount
			entries = append(entries, LogEntry{
				Kind:    LogEvent,
				Code:    CodeFine,
				Quarter: st.Quarter,
				Ref:     ref,
				Amount:  ef.Amount,
			})
		}
	}
	return st, entries
}
