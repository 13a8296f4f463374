package tui

import (
	"fmt"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

// Describe renders one structured log entry as display text. This is the
// text-generation collaborator the core deliberately does not contain: it
// consumes tagged entries and produces strings, nothing more.
func Describe(e sim.LogEntry, cat sim.Catalog) string {
	switch e.Code {
	case sim.CodeDirectiveSet:
		return fmt.Sprintf("The board demands $%dM this quarter.", e.Amount)
	case sim.CodeHandDealt:
		return fmt.Sprintf("%d project proposals land on your desk.", e.Amount)
	case sim.CodeCrisisLooming:
		return fmt.Sprintf("Trouble brewing: %s.", refTitle(cat, e.Ref))
	case sim.CodeCardPlayed:
		return fmt.Sprintf("Greenlit: %s.", refTitle(cat, e.Ref))
	case sim.CodeCardOutcome:
		return fmt.Sprintf("%s turned out %s.", refTitle(cat, e.Ref), tierText(e.Tier))
	case sim.CodeMeterChange:
		return fmt.Sprintf("%s %+d.", meterText(e.Meter), e.Delta)
	case sim.CodeProfitImpact:
		return fmt.Sprintf("Projected impact: $%+dM.", e.Amount)
	case sim.CodeFine:
		return fmt.Sprintf("Fine assessed: $%dM.", e.Amount)
	case sim.CodeCapitalSpent:
		return fmt.Sprintf("Spent %d political capital.", e.Amount)
	case sim.CodeCapitalEarned:
		return fmt.Sprintf("Gained political capital (now %d).", e.Amount)
	case sim.CodeCapitalAdjusted:
		return fmt.Sprintf("Quarterly capital adjustment %+d (now %d).", e.Delta, e.Amount)
	case sim.CodeMeterExchanged:
		return fmt.Sprintf("Traded %s (%d) for capital.", meterText(e.Meter), e.Delta)
	case sim.CodeIdleQuarter:
		return "You greenlit nothing this quarter. The board notices."
	case sim.CodeCrisisResolved:
		return fmt.Sprintf("Crisis response resolved %s.", tierText(e.Tier))
	case sim.CodeEvilAccrued:
		return fmt.Sprintf("That choice will weigh on you (+%d).", e.Amount)
	case sim.CodeSituationQueued:
		return fmt.Sprintf("Consequence queued: %s.", refTitle(cat, e.Ref))
	case sim.CodeSituationDeferred:
		return fmt.Sprintf("Kicked down the road: %s (defer #%d).", refTitle(cat, e.Ref), e.Amount)
	case sim.CodeSituationEvicted:
		return fmt.Sprintf("No more road: %s is due now.", refTitle(cat, e.Ref))
	case sim.CodeSituationLapsed:
		return fmt.Sprintf("%s festered unaddressed.", refTitle(cat, e.Ref))
	case sim.CodeFollowUpFavorable:
		return fmt.Sprintf("%s paid off.", refTitle(cat, e.Ref))
	case sim.CodeFollowUpNeutral:
		return fmt.Sprintf("%s fizzled out.", refTitle(cat, e.Ref))
	case sim.CodeFollowUpEscalated:
		return fmt.Sprintf("%s just became a crisis.", refTitle(cat, e.Ref))
	case sim.CodeQuarterResult:
		return fmt.Sprintf("Quarter closed at $%dM.", e.Amount)
	case sim.CodeDirectiveMet:
		return fmt.Sprintf("Directive met (target $%dM).", e.Amount)
	case sim.CodeDirectiveMissed:
		return fmt.Sprintf("Directive missed (target $%dM).", e.Amount)
	case sim.CodeFavorChanged:
		return fmt.Sprintf("Board favorability %+d (now %d).", e.Delta, e.Amount)
	case sim.CodeOusted:
		return "The board has voted. Security will walk you out."
	case sim.CodeRetired:
		return "You got out on your own terms."
	case sim.CodeParachute:
		return fmt.Sprintf("Golden parachute: $%dM.", e.Amount)
	default:
		return e.Code
	}
}

// refTitle resolves any catalog id to its display title.
func refTitle(cat sim.Catalog, ref string) string {
	if cat != nil {
		if card, ok := cat.Card(ref); ok {
			return card.Title
		}
		if crisis, ok := cat.Crisis(ref); ok {
			return crisis.Title
		}
		if s, ok := cat.Situation(ref); ok {
			return s.Title
		}
		// Choice ids live inside crises.
		for _, cid := range cat.CrisisIDs() {
			if crisis, ok := cat.Crisis(cid); ok {
				if choice, ok := crisis.Choice(ref); ok {
					return choice.Title
				}
			}
		}
	}
	return ref
}

func tierText(t sim.Tier) string {
	switch t {
	case sim.TierGood:
		return "better than expected"
	case sim.TierBad:
		return "badly"
	default:
		return "as expected"
	}
}

func meterText(m sim.Meter) string {
	switch m {
	case sim.MeterDelivery:
		return "Delivery"
	case sim.MeterMorale:
		return "Morale"
	case sim.MeterGovernance:
		return "Governance"
	case sim.MeterAlignment:
		return "Alignment"
	case sim.MeterRunway:
		return "Runway"
	default:
		return "?"
	}
}
