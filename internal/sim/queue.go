package sim

import "github.com/justinbroadbent/inerticorp/internal/rng"

// SituationKind distinguishes directly-scheduled situations from the
// follow-ups spawned by resolved actions.
type SituationKind int

const (
	// SituationDirect fires as a crisis on its scheduled quarter unless
	// deferred.
	SituationDirect SituationKind = iota
	// SituationFollowUp triggers probabilistically, with a chance that
	// grows each quarter since it was queued.
	SituationFollowUp
)

// Situation is one deferred record. Per-entry state machine:
// queued -> fires (consumed) | deferred (scheduled+1, count+1) |
// lapsed (dropped, base impact applied).
type Situation struct {
	ID               string        `json:"id"` // origin identifier into the content catalog
	Kind             SituationKind `json:"kind"`
	QueuedQuarter    int           `json:"queued_quarter"`
	ScheduledQuarter int           `json:"scheduled_quarter"`
	DeferCount       int           `json:"defer_count"`
	OriginTier       Tier          `json:"origin_tier"` // outcome tier of the originating action
}

// canDefer reports whether the situation may be pushed another quarter.
func (s Situation) canDefer(maxDefer int) bool {
	return s.DeferCount < maxDefer
}

// deferred returns the record rescheduled to the next quarter with its
// defer counter bumped.
func (s Situation) deferred(currentQuarter int) Situation {
	s.ScheduledQuarter = currentQuarter + 1
	s.DeferCount++
	return s
}

// pushDeferred appends to the bounded deferred queue. When capacity would
// be exceeded the oldest entry (by queued-at quarter) is evicted into the
// immediate pending queue instead of being held forever: every situation
// eventually resolves.
func pushDeferred(deferred, pending []Situation, s Situation, capacity int) (newDeferred, newPending []Situation, evicted *Situation) {
	newDeferred = append(append([]Situation(nil), deferred...), s)
	newPending = append([]Situation(nil), pending...)
	if len(newDeferred) <= capacity {
		return newDeferred, newPending, nil
	}

	oldest := 0
	for i := 1; i < len(newDeferred); i++ {
		if newDeferred[i].QueuedQuarter < newDeferred[oldest].QueuedQuarter {
			oldest = i
		}
	}
	ev := newDeferred[oldest]
	newDeferred = append(newDeferred[:oldest], newDeferred[oldest+1:]...)
	newPending = append(newPending, ev)
	return newDeferred, newPending, &ev
}

// Follow-up trigger parameters: the chance grows linearly with quarters
// since origin, clamped.
const (
	followUpBaseChance = 15
	followUpChanceStep = 12
	followUpMaxChance  = 60
)

// followUpChance is the percent chance a queued follow-up fires this
// quarter.
func followUpChance(queuedQuarter, currentQuarter int) int {
	elapsed := currentQuarter - queuedQuarter
	if elapsed < 0 {
		elapsed = 0
	}
	return minInt(followUpMaxChance, followUpBaseChance+followUpChanceStep*elapsed)
}

// FollowUpKind is the second-stage result of a triggered follow-up.
type FollowUpKind int

const (
	FollowUpFavorable FollowUpKind = iota
	FollowUpNeutral
	FollowUpEscalation
)

// followUpKindWeights shift with the originating action's outcome tier:
// good origins tend to pay off, bad origins tend to blow up.
var followUpKindWeights = map[Tier][3]int{
	TierGood:     {50, 40, 10},
	TierExpected: {25, 55, 20},
	TierBad:      {10, 40, 50},
}

// rollFollowUpKind draws the follow-up kind from the origin-tier weighted
// table. One draw.
func rollFollowUpKind(origin Tier, src rng.Source) FollowUpKind {
	w := followUpKindWeights[origin]
	roll := src.Intn(w[0] + w[1] + w[2])
	switch {
	case roll < w[0]:
		return FollowUpFavorable
	case roll < w[0]+w[1]:
		return FollowUpNeutral
	default:
		return FollowUpEscalation
	}
}
