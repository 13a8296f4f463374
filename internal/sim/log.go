package sim

// LogKind is the coarse category of a log entry.
type LogKind string

const (
	LogInfo        LogKind = "info"
	LogMeterChange LogKind = "meter"
	LogOutcome     LogKind = "outcome"
	LogEvent       LogKind = "event"
)

// Machine-readable entry codes. The presentation layer maps these to text;
// the core never formats natural language.
const (
	CodeDirectiveSet      = "directive.set"
	CodeHandDealt         = "hand.dealt"
	CodeCrisisLooming     = "crisis.looming"
	CodeCardPlayed        = "card.played"
	CodeCardOutcome       = "card.outcome"
	CodeMeterChange       = "meter.change"
	CodeProfitImpact      = "profit.impact"
	CodeFine              = "fine"
	CodeCapitalSpent      = "capital.spent"
	CodeCapitalEarned     = "capital.earned"
	CodeCapitalAdjusted   = "capital.adjusted"
	CodeMeterExchanged    = "meter.exchanged"
	CodeIdleQuarter       = "quarter.idle"
	CodeCrisisResolved    = "crisis.outcome"
	CodeEvilAccrued       = "evil.accrued"
	CodeSituationQueued   = "situation.queued"
	CodeSituationDeferred = "situation.deferred"
	CodeSituationEvicted  = "situation.evicted"
	CodeSituationLapsed   = "situation.lapsed"
	CodeFollowUpFavorable = "followup.favorable"
	CodeFollowUpNeutral   = "followup.neutral"
	CodeFollowUpEscalated = "followup.escalated"
	CodeQuarterResult     = "quarter.result"
	CodeDirectiveMet      = "directive.met"
	CodeDirectiveMissed   = "directive.missed"
	CodeFavorChanged      = "favor.changed"
	CodeOusted            = "ousted"
	CodeRetired           = "retired"
	CodeParachute         = "parachute"
)

// LogEntry is one tagged record in the flat ordered transition log. Fields
// are populated according to Code; unused fields stay zero.
type LogEntry struct {
	Kind    LogKind `json:"kind"`
	Code    string  `json:"code"`
	Quarter int     `json:"quarter"`
	Ref     string  `json:"ref,omitempty"` // card / crisis / choice / situation id
	Meter   Meter   `json:"meter,omitempty"`
	Delta   int     `json:"delta,omitempty"`
	Tier    Tier    `json:"tier,omitempty"`
	Amount  int     `json:"amount,omitempty"`
}
