package sim

// Tier is the resolved result of a probability-weighted roll.
type Tier int

const (
	TierGood Tier = iota
	TierExpected
	TierBad
)

// String returns the tier identifier.
func (t Tier) String() string {
	switch t {
	case TierGood:
		return "good"
	case TierExpected:
		return "expected"
	case TierBad:
		return "bad"
	default:
		return "unknown"
	}
}

// Weights is a Good/Expected/Bad probability profile. Weights are relative;
// the resolver draws over their sum.
type Weights struct {
	Good     int `yaml:"good" json:"good"`
	Expected int `yaml:"expected" json:"expected"`
	Bad      int `yaml:"bad" json:"bad"`
}

// OutcomeProfile carries one effect list per tier.
type OutcomeProfile struct {
	Good     []Effect `yaml:"good" json:"good"`
	Expected []Effect `yaml:"expected" json:"expected"`
	Bad      []Effect `yaml:"bad" json:"bad"`
}

// ForTier returns the effect list for the resolved tier.
func (p OutcomeProfile) ForTier(t Tier) []Effect {
	switch t {
	case TierGood:
		return p.Good
	case TierBad:
		return p.Bad
	default:
		return p.Expected
	}
}

// Card is a playable project. The engine treats cards as opaque pre-validated
// content: it never mutates them.
type Card struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Affinity Meter          `json:"affinity"` // meter whose health skews the roll
	Weights  Weights        `json:"weights"`  // base probability profile
	Profile  OutcomeProfile `json:"profile"`
	Cost     int            `json:"cost"` // political capital, on top of position cost

	// FollowUpID names the situation queued as a delayed consequence of
	// playing this card. Empty for cards with no tail.
	FollowUpID string `json:"follow_up_id,omitempty"`
}

// ChoiceKind selects the crisis baseline weight table.
type ChoiceKind int

const (
	// ChoiceStandard resolves against a heavily Expected table.
	ChoiceStandard ChoiceKind = iota
	// ChoiceCapital spends political capital and skews heavily favorable.
	ChoiceCapital
	// ChoiceCorporate pays its cost in evil score and is high-variance.
	ChoiceCorporate
)

// String returns the choice-kind identifier.
func (k ChoiceKind) String() string {
	switch k {
	case ChoiceCapital:
		return "capital"
	case ChoiceCorporate:
		return "corporate"
	default:
		return "standard"
	}
}

// Choice is one response to a crisis. It carries either a flat effect list
// or a tiered profile, never both.
type Choice struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Kind        ChoiceKind      `json:"kind"`
	CapitalCost int             `json:"capital_cost"` // deducted before resolving
	Intensity   int             `json:"intensity"`    // added to the evil score
	Effects     []Effect        `json:"effects,omitempty"`
	Profile     *OutcomeProfile `json:"profile,omitempty"`
}

// Crisis is an event demanding a choice. Content validation guarantees
// between 2 and 4 uniquely-identified choices.
type Crisis struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Choices []Choice `json:"choices"`
}

// Choice returns the choice with the given id.
func (c Crisis) Choice(id string) (Choice, bool) {
	for _, ch := range c.Choices {
		if ch.ID == id {
			return ch, true
		}
	}
	return Choice{}, false
}

// SituationDef describes a deferrable situation: the crisis it escalates
// into, the impact applied if it lapses unresolved, and the upside if a
// follow-up lands favorably.
type SituationDef struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	CrisisID   string   `json:"crisis_id"`
	BaseImpact []Effect `json:"base_impact,omitempty"`
	Favorable  []Effect `json:"favorable,omitempty"`
}

// Catalog is the read-only content collaborator. ID listings must be in a
// stable order; the engine indexes into them with RNG draws and a reordered
// catalog would break replay determinism.
type Catalog interface {
	Card(id string) (Card, bool)
	Crisis(id string) (Crisis, bool)
	Situation(id string) (SituationDef, bool)

	CardIDs() []string
	CrisisIDs() []string
}
