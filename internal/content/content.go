// Package content loads and validates the card/crisis/situation catalog
// consumed by the simulation engine. Content is data, not logic: the engine
// receives it pre-validated and never mutates it. Validation failures are
// authoring errors and fail fast at load time, not mid-game.
package content

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

// Catalog is the validated, indexed content set. ID listings are sorted so
// the engine's RNG-indexed picks replay deterministically.
type Catalog struct {
	cards      map[string]sim.Card
	crises     map[string]sim.Crisis
	situations map[string]sim.SituationDef

	cardIDs   []string
	crisisIDs []string
}

var _ sim.Catalog = (*Catalog)(nil)

// Card returns the card with the given id.
func (c *Catalog) Card(id string) (sim.Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Crisis returns the crisis with the given id.
func (c *Catalog) Crisis(id string) (sim.Crisis, bool) {
	cr, ok := c.crises[id]
	return cr, ok
}

// Situation returns the situation definition with the given id.
func (c *Catalog) Situation(id string) (sim.SituationDef, bool) {
	s, ok := c.situations[id]
	return s, ok
}

// CardIDs returns all card ids in stable (sorted) order.
func (c *Catalog) CardIDs() []string { return c.cardIDs }

// CrisisIDs returns all crisis ids in stable (sorted) order.
func (c *Catalog) CrisisIDs() []string { return c.crisisIDs }

// Load reads and validates a catalog. Search order: customPath ->
// ./content/catalog.yaml -> embedded default.
func Load(customPath string) (*Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("content: cannot read catalog %s: %w", customPath, err)
		}
		return Parse(data)
	}

	if data, err := os.ReadFile("content/catalog.yaml"); err == nil {
		return Parse(data)
	}

	return Parse(defaultCatalogYAML)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content: cannot parse catalog: %w", err)
	}

	cat := &Catalog{
		cards:      make(map[string]sim.Card, len(doc.Cards)),
		crises:     make(map[string]sim.Crisis, len(doc.Crises)),
		situations: make(map[string]sim.SituationDef, len(doc.Situations)),
	}

	for _, cy := range doc.Cards {
		card, err := cy.toCard()
		if err != nil {
			return nil, err
		}
		if _, dup := cat.cards[card.ID]; dup {
			return nil, fmt.Errorf("content: duplicate card id %q", card.ID)
		}
		cat.cards[card.ID] = card
		cat.cardIDs = append(cat.cardIDs, card.ID)
	}

	for _, cy := range doc.Crises {
		crisis, err := cy.toCrisis()
		if err != nil {
			return nil, err
		}
		if _, dup := cat.crises[crisis.ID]; dup {
			return nil, fmt.Errorf("content: duplicate crisis id %q", crisis.ID)
		}
		cat.crises[crisis.ID] = crisis
		cat.crisisIDs = append(cat.crisisIDs, crisis.ID)
	}

	for _, sy := range doc.Situations {
		def, err := sy.toSituation()
		if err != nil {
			return nil, err
		}
		if _, dup := cat.situations[def.ID]; dup {
			return nil, fmt.Errorf("content: duplicate situation id %q", def.ID)
		}
		cat.situations[def.ID] = def
	}

	sort.Strings(cat.cardIDs)
	sort.Strings(cat.crisisIDs)

	if err := cat.validateRefs(); err != nil {
		return nil, err
	}
	return cat, nil
}

// validateRefs checks cross-references after all sections are indexed.
func (c *Catalog) validateRefs() error {
	if len(c.cards) == 0 {
		return fmt.Errorf("content: catalog has no cards")
	}
	for id, card := range c.cards {
		if card.FollowUpID != "" {
			if _, ok := c.situations[card.FollowUpID]; !ok {
				return fmt.Errorf("content: card %q references unknown situation %q", id, card.FollowUpID)
			}
		}
	}
	for id, def := range c.situations {
		if _, ok := c.crises[def.CrisisID]; !ok {
			return fmt.Errorf("content: situation %q references unknown crisis %q", id, def.CrisisID)
		}
	}
	return nil
}
