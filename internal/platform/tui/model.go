// Package tui is the Bubble Tea presentation layer. It maps keys to phase
// inputs, renders state, and formats the engine's structured log entries.
// No game rule lives here; everything flows through sim.Engine.Advance.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinbroadbent/inerticorp/internal/rng"
	"github.com/justinbroadbent/inerticorp/internal/sim"
	"github.com/justinbroadbent/inerticorp/internal/storage"
)

// uiMode tracks what the key handler is currently selecting.
type uiMode int

const (
	modeNormal uiMode = iota
	modeExchange // next key picks the meter to trade away
)

// maxLogLines bounds the on-screen event feed.
const maxLogLines = 14

// autosaveSlot is the slot written at every quarter boundary.
const autosaveSlot = "autosave"

// GameModel drives one interactive run.
type GameModel struct {
	engine     *sim.Engine
	state      sim.State
	src        rng.Source
	store      *storage.Store
	seed       int64
	difficulty string

	width  int
	height int

	mode       uiMode
	feed       []string // rendered log lines, newest last
	runSaved   bool     // finished run recorded to the hall of fame
	quitting   bool
	backToMenu bool
}

// NewGameModel starts a model over a fresh or resumed state.
func NewGameModel(engine *sim.Engine, st sim.State, src rng.Source, store *storage.Store, seed int64, difficulty string, width, height int) GameModel {
	return GameModel{
		engine:     engine,
		state:      st,
		src:        src,
		store:      store,
		seed:       seed,
		difficulty: difficulty,
		width:      width,
		height:     height,
	}
}

// Init implements tea.Model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey maps a key press to a phase input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "b", "esc":
		if m.state.Terminal() {
			m.backToMenu = true
			return m, nil
		}
	}

	if m.state.Terminal() {
		return m, nil
	}

	if m.mode == modeExchange {
		return m.handleExchangeKey(key)
	}

	switch m.state.Phase {
	case sim.PhaseDemand, sim.PhaseResolution:
		if key == "enter" || key == " " {
			return m.advance(sim.Advance())
		}
	case sim.PhasePlayCards:
		return m.handlePlayKey(key)
	case sim.PhaseCrisis:
		return m.handleCrisisKey(key)
	}
	return m, nil
}

// handlePlayKey covers the PlayCards phase: digits play from hand, t opens
// the exchange selector, enter ends the phase.
func (m GameModel) handlePlayKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "e":
		return m.advance(sim.Input{Kind: sim.InputEndPhase})
	case "t":
		m.mode = modeExchange
		return m, nil
	}
	if idx, ok := digitIndex(key); ok && idx < len(m.state.Hand) {
		id := m.state.Hand[idx]
		if m.engine.CanPlay(m.state, id) {
			return m.advance(sim.PlayCard(id))
		}
	}
	return m, nil
}

// handleCrisisKey covers the Crisis phase: digits pick a choice, f defers
// when allowed, enter passes through an empty phase.
func (m GameModel) handleCrisisKey(key string) (tea.Model, tea.Cmd) {
	if m.state.PendingCrisis == "" {
		if key == "enter" || key == " " {
			return m.advance(sim.Advance())
		}
		return m, nil
	}

	if key == "f" && m.engine.CanDefer(m.state) {
		return m.advance(sim.Input{Kind: sim.InputDefer})
	}

	crisis, ok := m.engine.Catalog().Crisis(m.state.PendingCrisis)
	if !ok {
		return m, nil
	}
	if idx, ok := digitIndex(key); ok && idx < len(crisis.Choices) {
		choice := crisis.Choices[idx]
		if m.engine.CanChoose(m.state, choice.ID) {
			return m.advance(sim.Choose(choice.ID))
		}
	}
	return m, nil
}

// handleExchangeKey resolves the meter picked for a capital trade.
func (m GameModel) handleExchangeKey(key string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	meters := []sim.Meter{
		sim.MeterDelivery, sim.MeterMorale, sim.MeterGovernance,
		sim.MeterAlignment, sim.MeterRunway,
	}
	if idx, ok := digitIndex(key); ok && idx < len(meters) {
		if m.engine.CanExchange(m.state, meters[idx]) {
			return m.advance(sim.Exchange(meters[idx]))
		}
	}
	return m, nil
}

// advance runs one engine transition and folds the log into the feed.
func (m GameModel) advance(in sim.Input) (tea.Model, tea.Cmd) {
	next, entries, err := m.engine.Advance(m.state, in, m.src)
	if err != nil {
		// Inputs are pre-validated with capability predicates; an error
		// here is a key-handling bug, surfaced but not fatal.
		m.feed = appendFeed(m.feed, fmt.Sprintf("!! %v", err))
		return m, nil
	}
	m.state = next
	for _, e := range entries {
		m.feed = appendFeed(m.feed, Describe(e, m.engine.Catalog()))
	}

	if m.state.Terminal() {
		m.recordRun()
	} else if m.state.Phase == sim.PhaseDemand && m.store != nil {
		//nolint:errcheck // Best-effort autosave
		m.store.SaveSlot(autosaveSlot, m.difficulty, m.seed, m.state)
	}
	return m, nil
}

// recordRun writes the finished run to the hall of fame, once.
func (m *GameModel) recordRun() {
	if m.runSaved || m.store == nil {
		return
	}
	reason := "ousted"
	if m.state.Tenure.Retired {
		reason = "retired"
	}
	//nolint:errcheck // Best-effort save
	m.store.RecordRun(storage.RunRecord{
		Difficulty:  m.difficulty,
		Quarters:    m.state.Tenure.QuartersSurvived,
		TotalProfit: m.state.Tenure.TotalProfit,
		EvilScore:   m.state.Tenure.EvilScore,
		Parachute:   sim.Parachute(m.state.Tenure),
		EndReason:   reason,
	})
	if m.store != nil {
		//nolint:errcheck // The run is over; the autosave is stale
		m.store.DeleteSlot(autosaveSlot)
	}
	m.runSaved = true
}

// View implements tea.Model.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	return renderGame(m)
}

// IsQuitting reports whether the user asked to exit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user asked to leave a finished run.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// State exposes the current state for the session wrapper.
func (m GameModel) State() sim.State { return m.state }

// digitIndex maps "1".."9" to 0..8.
func digitIndex(key string) (int, bool) {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '1'), true
	}
	return 0, false
}

// appendFeed keeps the feed bounded.
func appendFeed(feed []string, line string) []string {
	feed = append(feed, line)
	if len(feed) > maxLogLines {
		feed = feed[len(feed)-maxLogLines:]
	}
	return feed
}
