package content

import (
	"fmt"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

// YAML schema for authored catalogs. The string-keyed forms here are
// converted into the engine's typed values at load time so authoring
// mistakes surface as load errors.

type catalogYAML struct {
	Cards      []cardYAML      `yaml:"cards"`
	Crises     []crisisYAML    `yaml:"crises"`
	Situations []situationYAML `yaml:"situations"`
}

type cardYAML struct {
	ID       string       `yaml:"id"`
	Title    string       `yaml:"title"`
	Affinity string       `yaml:"affinity"`
	Cost     int          `yaml:"cost"`
	Weights  sim.Weights  `yaml:"weights"`
	Profile  *profileYAML `yaml:"profile"`
	FollowUp string       `yaml:"follow_up"`
}

type profileYAML struct {
	Good     []effectYAML `yaml:"good"`
	Expected []effectYAML `yaml:"expected"`
	Bad      []effectYAML `yaml:"bad"`
}

type crisisYAML struct {
	ID      string       `yaml:"id"`
	Title   string       `yaml:"title"`
	Choices []choiceYAML `yaml:"choices"`
}

type choiceYAML struct {
	ID        string       `yaml:"id"`
	Title     string       `yaml:"title"`
	Kind      string       `yaml:"kind"`
	Cost      int          `yaml:"cost"`      // political capital
	Intensity int          `yaml:"intensity"` // evil score
	Effects   []effectYAML `yaml:"effects"`
	Profile   *profileYAML `yaml:"profile"`
}

type situationYAML struct {
	ID         string       `yaml:"id"`
	Title      string       `yaml:"title"`
	Crisis     string       `yaml:"crisis"`
	BaseImpact []effectYAML `yaml:"base_impact"`
	Favorable  []effectYAML `yaml:"favorable"`
}

// effectYAML is the compact authored form of an effect: exactly one of
// meter+delta, profit, or fine.
type effectYAML struct {
	Meter  string `yaml:"meter"`
	Delta  int    `yaml:"delta"`
	Profit *int   `yaml:"profit"`
	Fine   *int   `yaml:"fine"`
}

func parseMeter(name string) (sim.Meter, error) {
	switch name {
	case "delivery":
		return sim.MeterDelivery, nil
	case "morale":
		return sim.MeterMorale, nil
	case "governance":
		return sim.MeterGovernance, nil
	case "alignment":
		return sim.MeterAlignment, nil
	case "runway":
		return sim.MeterRunway, nil
	default:
		return sim.MeterNone, fmt.Errorf("content: unknown meter %q", name)
	}
}

func (e effectYAML) toEffect(owner string) (sim.Effect, error) {
	set := 0
	if e.Meter != "" {
		set++
	}
	if e.Profit != nil {
		set++
	}
	if e.Fine != nil {
		set++
	}
	if set != 1 {
		return sim.Effect{}, fmt.Errorf("content: %s: effect must set exactly one of meter, profit, fine", owner)
	}

	switch {
	case e.Profit != nil:
		return sim.ProfitEffect(*e.Profit), nil
	case e.Fine != nil:
		if *e.Fine < 0 {
			return sim.Effect{}, fmt.Errorf("content: %s: fine must be non-negative", owner)
		}
		return sim.FineEffect(*e.Fine), nil
	default:
		m, err := parseMeter(e.Meter)
		if err != nil {
			return sim.Effect{}, fmt.Errorf("content: %s: %w", owner, err)
		}
		if e.Delta == 0 {
			return sim.Effect{}, fmt.Errorf("content: %s: meter effect needs a non-zero delta", owner)
		}
		return sim.MeterEffect(m, e.Delta), nil
	}
}

func toEffects(owner string, effs []effectYAML) ([]sim.Effect, error) {
	out := make([]sim.Effect, 0, len(effs))
	for _, e := range effs {
		ef, err := e.toEffect(owner)
		if err != nil {
			return nil, err
		}
		out = append(out, ef)
	}
	return out, nil
}

func (p *profileYAML) toProfile(owner string) (sim.OutcomeProfile, error) {
	good, err := toEffects(owner, p.Good)
	if err != nil {
		return sim.OutcomeProfile{}, err
	}
	expected, err := toEffects(owner, p.Expected)
	if err != nil {
		return sim.OutcomeProfile{}, err
	}
	bad, err := toEffects(owner, p.Bad)
	if err != nil {
		return sim.OutcomeProfile{}, err
	}
	return sim.OutcomeProfile{Good: good, Expected: expected, Bad: bad}, nil
}

func (c cardYAML) toCard() (sim.Card, error) {
	if c.ID == "" {
		return sim.Card{}, fmt.Errorf("content: card without id")
	}
	affinity, err := parseMeter(c.Affinity)
	if err != nil {
		return sim.Card{}, fmt.Errorf("content: card %q: %w", c.ID, err)
	}
	if c.Weights.Good < 0 || c.Weights.Expected < 0 || c.Weights.Bad < 0 {
		return sim.Card{}, fmt.Errorf("content: card %q: negative outcome weight", c.ID)
	}
	if c.Weights.Good+c.Weights.Expected+c.Weights.Bad == 0 {
		return sim.Card{}, fmt.Errorf("content: card %q: zero weight sum", c.ID)
	}
	if c.Cost < 0 {
		return sim.Card{}, fmt.Errorf("content: card %q: negative cost", c.ID)
	}
	if c.Profile == nil {
		return sim.Card{}, fmt.Errorf("content: card %q: missing outcome profile", c.ID)
	}
	profile, err := c.Profile.toProfile("card " + c.ID)
	if err != nil {
		return sim.Card{}, err
	}
	return sim.Card{
		ID:         c.ID,
		Title:      c.Title,
		Affinity:   affinity,
		Weights:    c.Weights,
		Profile:    profile,
		Cost:       c.Cost,
		FollowUpID: c.FollowUp,
	}, nil
}

func parseChoiceKind(name string) (sim.ChoiceKind, error) {
	switch name {
	case "", "standard":
		return sim.ChoiceStandard, nil
	case "capital":
		return sim.ChoiceCapital, nil
	case "corporate":
		return sim.ChoiceCorporate, nil
	default:
		return sim.ChoiceStandard, fmt.Errorf("content: unknown choice kind %q", name)
	}
}

// Crisis choice sets are bounded: fewer than two choices is not a decision,
// more than four does not fit the decision surface.
const (
	minChoices = 2
	maxChoices = 4
)

func (c crisisYAML) toCrisis() (sim.Crisis, error) {
	if c.ID == "" {
		return sim.Crisis{}, fmt.Errorf("content: crisis without id")
	}
	if len(c.Choices) < minChoices || len(c.Choices) > maxChoices {
		return sim.Crisis{}, fmt.Errorf("content: crisis %q: needs %d-%d choices, has %d",
			c.ID, minChoices, maxChoices, len(c.Choices))
	}

	seen := make(map[string]bool, len(c.Choices))
	choices := make([]sim.Choice, 0, len(c.Choices))
	for _, chy := range c.Choices {
		if chy.ID == "" {
			return sim.Crisis{}, fmt.Errorf("content: crisis %q: choice without id", c.ID)
		}
		if seen[chy.ID] {
			return sim.Crisis{}, fmt.Errorf("content: crisis %q: duplicate choice id %q", c.ID, chy.ID)
		}
		seen[chy.ID] = true

		kind, err := parseChoiceKind(chy.Kind)
		if err != nil {
			return sim.Crisis{}, fmt.Errorf("content: crisis %q choice %q: %w", c.ID, chy.ID, err)
		}
		if chy.Cost < 0 || chy.Intensity < 0 {
			return sim.Crisis{}, fmt.Errorf("content: crisis %q choice %q: negative cost or intensity", c.ID, chy.ID)
		}
		if (len(chy.Effects) > 0) == (chy.Profile != nil) {
			return sim.Crisis{}, fmt.Errorf("content: crisis %q choice %q: needs exactly one of effects or profile", c.ID, chy.ID)
		}

		choice := sim.Choice{
			ID:          chy.ID,
			Title:       chy.Title,
			Kind:        kind,
			CapitalCost: chy.Cost,
			Intensity:   chy.Intensity,
		}
		owner := fmt.Sprintf("crisis %s choice %s", c.ID, chy.ID)
		if chy.Profile != nil {
			profile, err := chy.Profile.toProfile(owner)
			if err != nil {
				return sim.Crisis{}, err
			}
			choice.Profile = &profile
		} else {
			effects, err := toEffects(owner, chy.Effects)
			if err != nil {
				return sim.Crisis{}, err
			}
			choice.Effects = effects
		}
		choices = append(choices, choice)
	}

	return sim.Crisis{ID: c.ID, Title: c.Title, Choices: choices}, nil
}

func (s situationYAML) toSituation() (sim.SituationDef, error) {
	if s.ID == "" {
		return sim.SituationDef{}, fmt.Errorf("content: situation without id")
	}
	if s.Crisis == "" {
		return sim.SituationDef{}, fmt.Errorf("content: situation %q: missing crisis reference", s.ID)
	}
	base, err := toEffects("situation "+s.ID, s.BaseImpact)
	if err != nil {
		return sim.SituationDef{}, err
	}
	favorable, err := toEffects("situation "+s.ID, s.Favorable)
	if err != nil {
		return sim.SituationDef{}, err
	}
	return sim.SituationDef{
		ID:         s.ID,
		Title:      s.Title,
		CrisisID:   s.Crisis,
		BaseImpact: base,
		Favorable:  favorable,
	}, nil
}
