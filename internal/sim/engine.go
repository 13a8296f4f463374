package sim

import "github.com/justinbroadbent/inerticorp/internal/rng"

// InputKind tags the phase-specific player input.
type InputKind int

const (
	// InputAdvance moves through Demand, an empty Crisis, and Resolution.
	InputAdvance InputKind = iota
	// InputPlayCard plays a card from hand during PlayCards.
	InputPlayCard
	// InputExchange trades meter points for capital during PlayCards.
	InputExchange
	// InputEndPhase closes the PlayCards phase early.
	InputEndPhase
	// InputChoice answers the pending crisis.
	InputChoice
	// InputDefer pushes the pending situation to next quarter.
	InputDefer
)

// Input is the player decision for one transition.
type Input struct {
	Kind          InputKind `json:"kind"`
	CardID        string    `json:"card_id,omitempty"`
	ChoiceID      string    `json:"choice_id,omitempty"`
	ExchangeMeter Meter     `json:"exchange_meter,omitempty"`
}

// Advance is shorthand for the empty phase-advancing input.
func Advance() Input { return Input{Kind: InputAdvance} }

// PlayCard builds a card-play input.
func PlayCard(id string) Input { return Input{Kind: InputPlayCard, CardID: id} }

// Choose builds a crisis-choice input.
func Choose(id string) Input { return Input{Kind: InputChoice, ChoiceID: id} }

// Exchange builds a meter-for-capital exchange input.
func Exchange(m Meter) Input { return Input{Kind: InputExchange, ExchangeMeter: m} }

// Engine is the phase state machine. It holds the resolved content catalog
// and tuning; both are read-only, so one Engine serves any number of
// concurrent runs as long as each transition owns its random source.
type Engine struct {
	cat Catalog
	tun Tuning
}

// NewEngine builds an engine over pre-validated content and resolved tuning.
func NewEngine(cat Catalog, tun Tuning) *Engine {
	return &Engine{cat: cat, tun: tun}
}

// Tuning returns the engine's balance constants.
func (e *Engine) Tuning() Tuning { return e.tun }

// Catalog returns the engine's content catalog.
func (e *Engine) Catalog() Catalog { return e.cat }

// Advance is the sole entry point: given an immutable state, a phase input
// and a random source it returns the next state plus the ordered log of
// what happened. On error the returned state is the input state, unchanged.
func (e *Engine) Advance(st State, in Input, src rng.Source) (State, []LogEntry, error) {
	if st.Terminal() {
		return st, nil, ErrTerminal
	}

	switch st.Phase {
	case PhaseDemand:
		if in.Kind != InputAdvance {
			return st, nil, ErrWrongPhase
		}
		return e.demandPhase(st, src)
	case PhasePlayCards:
		return e.playPhase(st, in, src)
	case PhaseCrisis:
		return e.crisisPhase(st, in, src)
	case PhaseResolution:
		if in.Kind != InputAdvance {
			return st, nil, ErrWrongPhase
		}
		return e.resolutionPhase(st, src)
	default:
		return st, nil, ErrWrongPhase
	}
}

// demandPhase binds the quarter's directive, deals the hand, walks the
// deferred queue and may pre-select a crisis. Draw order is fixed: hand
// shuffle, per-follow-up trigger rolls, crisis chance, crisis pick.
func (e *Engine) demandPhase(st State, src rng.Source) (State, []LogEntry, error) {
	var entries []LogEntry

	// Board directive: last quarter's profit plus organic growth and a
	// pressure surcharge.
	target := maxInt(e.tun.DirectiveFloor, st.Tenure.LastProfit+5+st.Tenure.Pressure()*3)
	st.Directive = Directive{Target: target}
	entries = append(entries, LogEntry{
		Kind: LogInfo, Code: CodeDirectiveSet, Quarter: st.Quarter, Amount: target,
	})

	// Deal the hand from the catalog's stable ordering.
	ids := append([]string(nil), e.cat.CardIDs()...)
	src.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	n := minInt(e.tun.HandSize, len(ids))
	st.Hand = ids[:n]
	entries = append(entries, LogEntry{
		Kind: LogInfo, Code: CodeHandDealt, Quarter: st.Quarter, Amount: n,
	})

	// Walk the deferred queue in order.
	var keep []Situation
	for _, sit := range st.Deferred {
		switch sit.Kind {
		case SituationDirect:
			if sit.ScheduledQuarter <= st.Quarter {
				st.Pending = append(append([]Situation(nil), st.Pending...), sit)
				continue
			}
			keep = append(keep, sit)

		case SituationFollowUp:
			elapsed := st.Quarter - sit.QueuedQuarter
			if elapsed >= e.tun.FollowUpExpiry {
				// Lapsed unresolved: the base impact lands.
				var fx []LogEntry
				if def, ok := e.cat.Situation(sit.ID); ok {
					st, fx = applyEffects(st, sit.ID, def.BaseImpact)
				}
				entries = append(entries, LogEntry{
					Kind: LogEvent, Code: CodeSituationLapsed, Quarter: st.Quarter, Ref: sit.ID,
				})
				entries = append(entries, fx...)
				continue
			}
			if src.Intn(100) >= followUpChance(sit.QueuedQuarter, st.Quarter) {
				keep = append(keep, sit)
				continue
			}
			st, entries = e.triggerFollowUp(st, sit, entries, src)
		}
	}
	st.Deferred = keep

	// Crisis pre-selection. The chance draw happens every quarter so the
	// stream does not depend on queue contents.
	crisisRoll := src.Intn(100)
	if len(st.Pending) > 0 {
		// A due situation takes the quarter's crisis slot.
		sit := st.Pending[0]
		if def, ok := e.cat.Situation(sit.ID); ok {
			st.PendingCrisis = def.CrisisID
			st.CrisisFrom = sit.ID
			entries = append(entries, LogEntry{
				Kind: LogEvent, Code: CodeCrisisLooming, Quarter: st.Quarter, Ref: def.CrisisID,
			})
		}
	} else if crisisRoll < e.tun.CrisisChance {
		crises := e.cat.CrisisIDs()
		if len(crises) > 0 {
			st.PendingCrisis = crises[src.Intn(len(crises))]
			entries = append(entries, LogEntry{
				Kind: LogEvent, Code: CodeCrisisLooming, Quarter: st.Quarter, Ref: st.PendingCrisis,
			})
		}
	}

	st.CardsPlayed = 0
	st.LastAffinity = MeterNone
	st.Phase = PhasePlayCards
	return st, entries, nil
}

// triggerFollowUp resolves a fired follow-up: a second weighted roll picks
// favorable, neutral, or escalation-to-crisis based on the origin tier.
func (e *Engine) triggerFollowUp(st State, sit Situation, entries []LogEntry, src rng.Source) (State, []LogEntry) {
	def, ok := e.cat.Situation(sit.ID)
	if !ok {
		return st, entries
	}
	switch rollFollowUpKind(sit.OriginTier, src) {
	case FollowUpFavorable:
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeFollowUpFavorable, Quarter: st.Quarter, Ref: sit.ID,
		})
		var fx []LogEntry
		st, fx = applyEffects(st, sit.ID, def.Favorable)
		entries = append(entries, fx...)
	case FollowUpNeutral:
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeFollowUpNeutral, Quarter: st.Quarter, Ref: sit.ID,
		})
	case FollowUpEscalation:
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeFollowUpEscalated, Quarter: st.Quarter, Ref: sit.ID,
		})
		sit.Kind = SituationDirect
		sit.ScheduledQuarter = st.Quarter
		st.Pending = append(append([]Situation(nil), st.Pending...), sit)
	}
	return st, entries
}

// playPhase handles card plays, meter exchanges and the explicit end of the
// phase. Playing zero cards is legal but signaled, and penalized at
// resolution.
func (e *Engine) playPhase(st State, in Input, src rng.Source) (State, []LogEntry, error) {
	switch in.Kind {
	case InputPlayCard:
		return e.playCard(st, in.CardID, src)

	case InputExchange:
		if !canExchange(st, in.ExchangeMeter, e.tun) {
			return st, nil, ErrCannotExchange
		}
		cost := ExchangeCost(in.ExchangeMeter)
		st.Meters = st.Meters.With(in.ExchangeMeter, -cost)
		st = earnCapital(st, 1, e.tun.CapitalMax)
		return st, []LogEntry{
			{Kind: LogEvent, Code: CodeMeterExchanged, Quarter: st.Quarter, Meter: in.ExchangeMeter, Delta: -cost},
			{Kind: LogEvent, Code: CodeCapitalEarned, Quarter: st.Quarter, Amount: st.Capital, Delta: 1},
		}, nil

	case InputEndPhase:
		var entries []LogEntry
		if st.CardsPlayed == 0 {
			entries = append(entries, LogEntry{
				Kind: LogInfo, Code: CodeIdleQuarter, Quarter: st.Quarter,
			})
		}
		st.Phase = PhaseCrisis
		return st, entries, nil

	default:
		return st, nil, ErrWrongPhase
	}
}

// playCard validates, pays for, resolves and applies one card play.
func (e *Engine) playCard(st State, cardID string, src rng.Source) (State, []LogEntry, error) {
	card, ok := e.cat.Card(cardID)
	if !ok {
		return st, nil, ErrUnknownCard
	}
	if !st.HasCard(cardID) {
		return st, nil, ErrNotInHand
	}
	if st.CardsPlayed >= e.tun.MaxCardsPerQuarter {
		return st, nil, ErrPlayLimit
	}

	cost := card.Cost + PositionCost(st.CardsPlayed)
	next, err := spendCapital(st, cost)
	if err != nil {
		return st, nil, err
	}
	st = next

	entries := []LogEntry{
		{Kind: LogInfo, Code: CodeCardPlayed, Quarter: st.Quarter, Ref: card.ID, Amount: cost},
	}
	if cost > 0 {
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeCapitalSpent, Quarter: st.Quarter, Ref: card.ID, Amount: cost,
		})
	}

	mods := Modifiers{
		PositionRisk: positionRisk(st.CardsPlayed),
		Affinity:     affinityModifier(st.Meters, card.Affinity),
		Momentum:     momentumModifier(st.Tenure.SuccessStreak),
		Synergy:      synergyModifier(st.LastAffinity, card.Affinity),
		EvilPath:     evilPathModifier(st.Tenure.EvilScore),
		Honeymoon:    honeymoonModifier(st.Tenure.QuartersSurvived),
	}
	tier := Resolve(card.Weights, mods, src)
	entries = append(entries, LogEntry{
		Kind: LogOutcome, Code: CodeCardOutcome, Quarter: st.Quarter, Ref: card.ID, Tier: tier,
	})

	var fx []LogEntry
	st, fx = applyEffects(st, card.ID, card.Profile.ForTier(tier))
	entries = append(entries, fx...)

	switch tier {
	case TierGood:
		st.Tenure.SuccessStreak++
		st.Tenure.WeakStreak = 0
	case TierExpected:
		st.Tenure.SuccessStreak = 0
	case TierBad:
		st.Tenure.SuccessStreak = 0
		st.Tenure.WeakStreak++
	}

	if card.FollowUpID != "" {
		sit := Situation{
			ID:               card.FollowUpID,
			Kind:             SituationFollowUp,
			QueuedQuarter:    st.Quarter,
			ScheduledQuarter: st.Quarter + 1,
			OriginTier:       tier,
		}
		var evicted *Situation
		st.Deferred, st.Pending, evicted = pushDeferred(st.Deferred, st.Pending, sit, e.tun.QueueCapacity)
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeSituationQueued, Quarter: st.Quarter, Ref: sit.ID,
		})
		if evicted != nil {
			entries = append(entries, LogEntry{
				Kind: LogEvent, Code: CodeSituationEvicted, Quarter: st.Quarter, Ref: evicted.ID,
			})
		}
	}

	st.Hand = withoutCard(st.Hand, cardID)
	st.CardsPlayed++
	st.LastAffinity = card.Affinity

	if st.CardsPlayed >= e.tun.MaxCardsPerQuarter || len(st.Hand) == 0 {
		st.Phase = PhaseCrisis
	}
	return st, entries, nil
}

// crisisPhase resolves the quarter's crisis, if any. With no crisis
// pending the phase is a pass-through.
func (e *Engine) crisisPhase(st State, in Input, src rng.Source) (State, []LogEntry, error) {
	if st.PendingCrisis == "" {
		if in.Kind != InputAdvance {
			return st, nil, ErrNoCrisis
		}
		st.Phase = PhaseResolution
		return st, nil, nil
	}

	switch in.Kind {
	case InputDefer:
		return e.deferCrisis(st)
	case InputChoice:
		return e.resolveCrisis(st, in.ChoiceID, src)
	default:
		return st, nil, ErrWrongPhase
	}
}

// deferCrisis pushes the pending situation to next quarter. Only crises
// that grew out of a situation can be deferred, and only below maximum
// severity.
func (e *Engine) deferCrisis(st State) (State, []LogEntry, error) {
	if st.CrisisFrom == "" {
		return st, nil, ErrCannotDefer
	}
	idx := -1
	for i, sit := range st.Pending {
		if sit.ID == st.CrisisFrom {
			idx = i
			break
		}
	}
	if idx < 0 {
		return st, nil, ErrCannotDefer
	}
	sit := st.Pending[idx]
	if !sit.canDefer(e.tun.MaxDeferCount) {
		return st, nil, ErrCannotDefer
	}

	st.Pending = append(append([]Situation(nil), st.Pending[:idx]...), st.Pending[idx+1:]...)
	sit = sit.deferred(st.Quarter)

	entries := []LogEntry{
		{Kind: LogEvent, Code: CodeSituationDeferred, Quarter: st.Quarter, Ref: sit.ID, Amount: sit.DeferCount},
	}
	var evicted *Situation
	st.Deferred, st.Pending, evicted = pushDeferred(st.Deferred, st.Pending, sit, e.tun.QueueCapacity)
	if evicted != nil {
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeSituationEvicted, Quarter: st.Quarter, Ref: evicted.ID,
		})
	}

	st.PendingCrisis = ""
	st.CrisisFrom = ""
	st.Phase = PhaseResolution
	return st, entries, nil
}

// resolveCrisis applies one crisis choice: capital is deducted before
// resolving, corporate intensity lands on the evil score, tiered profiles
// roll against the choice-kind weight table.
func (e *Engine) resolveCrisis(st State, choiceID string, src rng.Source) (State, []LogEntry, error) {
	crisis, ok := e.cat.Crisis(st.PendingCrisis)
	if !ok {
		return st, nil, ErrNoCrisis
	}
	choice, ok := crisis.Choice(choiceID)
	if !ok {
		return st, nil, ErrUnknownChoice
	}

	next, err := spendCapital(st, choice.CapitalCost)
	if err != nil {
		return st, nil, err
	}
	st = next

	var entries []LogEntry
	if choice.CapitalCost > 0 {
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeCapitalSpent, Quarter: st.Quarter, Ref: choice.ID, Amount: choice.CapitalCost,
		})
	}
	if choice.Intensity > 0 {
		st.Tenure.EvilScore += choice.Intensity
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeEvilAccrued, Quarter: st.Quarter, Ref: choice.ID, Amount: choice.Intensity,
		})
	}

	tier := TierExpected
	effects := choice.Effects
	if choice.Profile != nil {
		mods := Modifiers{
			EvilPath:  evilPathModifier(st.Tenure.EvilScore),
			Honeymoon: honeymoonModifier(st.Tenure.QuartersSurvived),
		}
		tier = Resolve(CrisisWeights(choice.Kind), mods, src)
		effects = choice.Profile.ForTier(tier)
	}
	entries = append(entries, LogEntry{
		Kind: LogOutcome, Code: CodeCrisisResolved, Quarter: st.Quarter, Ref: choice.ID, Tier: tier,
	})

	var fx []LogEntry
	st, fx = applyEffects(st, crisis.ID, effects)
	entries = append(entries, fx...)

	if st.CrisisFrom != "" {
		st.Pending = removeSituation(st.Pending, st.CrisisFrom)
	}
	st.PendingCrisis = ""
	st.CrisisFrom = ""
	st.Phase = PhaseResolution
	return st, entries, nil
}

// removeSituation drops the first entry with the given id.
func removeSituation(sits []Situation, id string) []Situation {
	for i, s := range sits {
		if s.ID == id {
			return append(append([]Situation(nil), sits[:i]...), sits[i+1:]...)
		}
	}
	return sits
}

// resolutionPhase closes the quarter: base operations profit, directive
// evaluation, favorability delta, capital adjustment, the survival roll,
// and tenure bookkeeping. Draw order is fixed: one base-operations draw,
// then one survival draw.
func (e *Engine) resolutionPhase(st State, src rng.Source) (State, []LogEntry, error) {
	var entries []LogEntry

	// Base operations: lightly modulated by meter health and organic
	// per-quarter growth, with a single bounded random swing.
	baseOps := e.tun.BaseOpsProfit + st.Quarter/4 + (st.Meters.Average()-50)/10 + (src.Intn(11) - 5)
	profit := baseOps + st.QuarterProfit - st.QuarterFines

	entries = append(entries, LogEntry{
		Kind: LogInfo, Code: CodeQuarterResult, Quarter: st.Quarter, Amount: profit,
	})

	met := profit >= st.Directive.Target
	code := CodeDirectiveMissed
	if met {
		code = CodeDirectiveMet
	}
	entries = append(entries, LogEntry{
		Kind: LogEvent, Code: code, Quarter: st.Quarter, Amount: st.Directive.Target,
	})

	favorIn := FavorInput{
		LastProfit:       st.Tenure.LastProfit,
		Profit:           profit,
		DirectiveMet:     met,
		Pressure:         st.Tenure.Pressure(),
		Evil:             st.Tenure.EvilScore,
		WeakStreak:       st.Tenure.WeakStreak,
		SuccessStreak:    st.Tenure.SuccessStreak,
		QuartersSurvived: st.Tenure.QuartersSurvived,
		CardsPlayed:      st.CardsPlayed,
		Meters:           st.Meters,
	}
	fd := FavorabilityDelta(favorIn)
	st.Tenure.Favor = clamp(st.Tenure.Favor+fd, 0, 100)
	entries = append(entries, LogEntry{
		Kind: LogEvent, Code: CodeFavorChanged, Quarter: st.Quarter, Delta: fd, Amount: st.Tenure.Favor,
	})

	adj := quarterCapitalAdjustment(st, e.tun)
	st = earnCapital(st, adj, e.tun.CapitalMax)
	entries = append(entries, LogEntry{
		Kind: LogEvent, Code: CodeCapitalAdjusted, Quarter: st.Quarter, Delta: adj, Amount: st.Capital,
	})

	// Tenure bookkeeping.
	st.Tenure.QuartersSurvived++
	st.Tenure.TotalProfit += profit
	st.Tenure.ProfitHistory = pushProfit(st.Tenure.ProfitHistory, profit, e.tun.ProfitHistorySize)
	if profit < 0 {
		st.Tenure.NegativeStreak++
	} else {
		st.Tenure.NegativeStreak = 0
	}
	st.Tenure.RetireBonus += maxInt(0, profit) / 10
	if met {
		st.Tenure.RetireBonus++
	}
	st.Tenure.LastProfit = profit

	// The survival roll always consumes exactly one draw.
	chance := OusterChance(favorIn, st.Tenure.Favor, st.Tenure.NegativeStreak)
	survived := survivalRoll(chance, src)

	switch {
	case st.Tenure.RetireBonus >= e.tun.RetirementThreshold:
		st.Tenure.Retired = true
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeRetired, Quarter: st.Quarter,
		})
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeParachute, Quarter: st.Quarter, Amount: Parachute(st.Tenure),
		})
	case !survived:
		st.Tenure.Ousted = true
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeOusted, Quarter: st.Quarter, Amount: chance,
		})
		entries = append(entries, LogEntry{
			Kind: LogEvent, Code: CodeParachute, Quarter: st.Quarter, Amount: Parachute(st.Tenure),
		})
	}

	// Reset the per-quarter working set.
	st.Hand = nil
	st.PendingCrisis = ""
	st.CrisisFrom = ""
	st.CardsPlayed = 0
	st.LastAffinity = MeterNone
	st.QuarterProfit = 0
	st.QuarterFines = 0

	if !st.Terminal() {
		st.Quarter++
		st.Phase = PhaseDemand
	}
	return st, entries, nil
}

// Capability predicates. The UI pre-validates every action with these; the
// matching Advance errors then never fire in a well-behaved caller.

// CanPlay reports whether the card could be played right now.
func (e *Engine) CanPlay(st State, cardID string) bool {
	card, ok := e.cat.Card(cardID)
	if !ok || st.Terminal() || st.Phase != PhasePlayCards {
		return false
	}
	if !st.HasCard(cardID) || st.CardsPlayed >= e.tun.MaxCardsPerQuarter {
		return false
	}
	return st.CanAfford(card.Cost + PositionCost(st.CardsPlayed))
}

// CanChoose reports whether the crisis choice is affordable and known.
func (e *Engine) CanChoose(st State, choiceID string) bool {
	if st.Terminal() || st.Phase != PhaseCrisis || st.PendingCrisis == "" {
		return false
	}
	crisis, ok := e.cat.Crisis(st.PendingCrisis)
	if !ok {
		return false
	}
	choice, ok := crisis.Choice(choiceID)
	if !ok {
		return false
	}
	return st.CanAfford(choice.CapitalCost)
}

// CanDefer reports whether the pending crisis can be pushed a quarter.
func (e *Engine) CanDefer(st State) bool {
	if st.Terminal() || st.Phase != PhaseCrisis || st.CrisisFrom == "" {
		return false
	}
	for _, sit := range st.Pending {
		if sit.ID == st.CrisisFrom {
			return sit.canDefer(e.tun.MaxDeferCount)
		}
	}
	return false
}

// CanExchange reports whether the meter can fund a capital exchange.
func (e *Engine) CanExchange(st State, m Meter) bool {
	if st.Terminal() || st.Phase != PhasePlayCards {
		return false
	}
	return canExchange(st, m, e.tun)
}
