package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

const validCatalog = `
cards:
  - id: alpha
    title: Alpha
    affinity: delivery
    weights: {good: 1, expected: 1, bad: 1}
    profile:
      expected:
        - profit: 1
crises:
  - id: storm
    title: Storm
    choices:
      - id: pay
        title: Pay up
        effects:
          - fine: 1
      - id: shrug
        title: Shrug
        effects:
          - profit: 2
`

func TestDefaultCatalogValid(t *testing.T) {
	cat, err := Parse(defaultCatalogYAML)
	if err != nil {
		t.Fatalf("Parse(default): %v", err)
	}

	cardIDs := cat.CardIDs()
	crisisIDs := cat.CrisisIDs()
	if len(cardIDs) == 0 || len(crisisIDs) == 0 {
		t.Fatalf("default catalog is thin: %d cards, %d crises", len(cardIDs), len(crisisIDs))
	}
	if !sort.StringsAreSorted(cardIDs) {
		t.Errorf("card ids not sorted: %v", cardIDs)
	}
	if !sort.StringsAreSorted(crisisIDs) {
		t.Errorf("crisis ids not sorted: %v", crisisIDs)
	}

	// Every crisis must leave a way out for a player with zero capital,
	// or a broke player can soft-lock the crisis phase.
	for _, id := range crisisIDs {
		crisis, ok := cat.Crisis(id)
		if !ok {
			t.Fatalf("listed crisis %q not retrievable", id)
		}
		free := false
		for _, c := range crisis.Choices {
			if c.CapitalCost == 0 {
				free = true
				break
			}
		}
		if !free {
			t.Errorf("crisis %q has no zero-cost choice", id)
		}
	}

	for _, id := range cardIDs {
		card, ok := cat.Card(id)
		if !ok {
			t.Fatalf("listed card %q not retrievable", id)
		}
		if card.FollowUpID != "" {
			if _, ok := cat.Situation(card.FollowUpID); !ok {
				t.Errorf("card %q follow-up %q missing", id, card.FollowUpID)
			}
		}
	}
}

func TestParseValidCatalog(t *testing.T) {
	cat, err := Parse([]byte(validCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	card, ok := cat.Card("alpha")
	if !ok {
		t.Fatal("card alpha missing")
	}
	if card.Affinity != sim.MeterDelivery {
		t.Errorf("Affinity = %v, want delivery", card.Affinity)
	}
	crisis, ok := cat.Crisis("storm")
	if !ok {
		t.Fatal("crisis storm missing")
	}
	choice, ok := crisis.Choice("pay")
	if !ok || len(choice.Effects) != 1 || choice.Effects[0].Kind != sim.EffectFine {
		t.Errorf("choice pay = %+v", choice)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no cards",
			yaml:    "crises: []\n",
			wantErr: "no cards",
		},
		{
			name: "duplicate card id",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}, profile: {expected: [{profit: 1}]}}
  - {id: a, affinity: morale, weights: {expected: 1}, profile: {expected: [{profit: 1}]}}
`,
			wantErr: "duplicate card id",
		},
		{
			name: "unknown meter",
			yaml: `
cards:
  - {id: a, affinity: vibes, weights: {expected: 1}, profile: {expected: [{profit: 1}]}}
`,
			wantErr: "unknown meter",
		},
		{
			name: "zero weight sum",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {}, profile: {expected: [{profit: 1}]}}
`,
			wantErr: "zero weight sum",
		},
		{
			name: "missing profile",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}}
`,
			wantErr: "missing outcome profile",
		},
		{
			name: "dangling follow-up",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}, profile: {expected: [{profit: 1}]}, follow_up: ghost}
`,
			wantErr: "unknown situation",
		},
		{
			name: "situation without crisis",
			yaml: validCatalog + `
situations:
  - {id: s, crisis: ghost}
`,
			wantErr: "unknown crisis",
		},
		{
			name: "crisis with one choice",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}, profile: {expected: [{profit: 1}]}}
crises:
  - id: c
    choices:
      - {id: only, effects: [{profit: 1}]}
`,
			wantErr: "choices",
		},
		{
			name: "choice with effects and profile",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}, profile: {expected: [{profit: 1}]}}
crises:
  - id: c
    choices:
      - {id: x, effects: [{profit: 1}], profile: {expected: [{profit: 1}]}}
      - {id: y, effects: [{profit: 1}]}
`,
			wantErr: "exactly one of effects or profile",
		},
		{
			name: "effect sets two fields",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}, profile: {expected: [{profit: 1, fine: 1}]}}
`,
			wantErr: "exactly one of meter, profit, fine",
		},
		{
			name: "meter effect without delta",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}, profile: {expected: [{meter: morale}]}}
`,
			wantErr: "non-zero delta",
		},
		{
			name: "negative fine",
			yaml: `
cards:
  - {id: a, affinity: delivery, weights: {expected: 1}, profile: {expected: [{fine: -3}]}}
`,
			wantErr: "non-negative",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("Parse accepted a bad catalog")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("err = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(validCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := cat.Card("alpha"); !ok {
		t.Error("custom catalog not loaded")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load accepted a missing custom path")
	}
}
