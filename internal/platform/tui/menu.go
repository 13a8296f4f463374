package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinbroadbent/inerticorp/internal/config"
	"github.com/justinbroadbent/inerticorp/internal/storage"
)

// menuChoice is what the user picked on the main menu.
type menuChoice int

const (
	menuNone menuChoice = iota
	menuNewGame
	menuResume
	menuScoreboard
)

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	presets  []config.Preset
	cursor   int
	resume   *storage.SaveEntry // non-nil when an autosave exists
	store    *storage.Store
	width    int
	height   int
	quitting bool
	choice   menuChoice
	picked   config.Preset
}

// NewMenuModel creates the main menu. It probes the store for an autosave
// so a resume line can be offered.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	m := MenuModel{
		presets: config.Presets(),
		store:   store,
		width:   width,
		height:  height,
	}
	if store != nil {
		if entry, err := store.LoadSlot("autosave"); err == nil && entry != nil {
			m.resume = entry
		}
	}
	return m
}

// itemCount is presets plus the optional resume line plus the hall of fame.
func (m MenuModel) itemCount() int {
	n := len(m.presets) + 1
	if m.resume != nil {
		n++
	}
	return n
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.itemCount()-1 {
				m.cursor++
			}
		case "tab":
			m.choice = menuScoreboard
		case "enter", " ":
			m.select_()
		}
	}
	return m, nil
}

// select_ maps the cursor position to a choice.
func (m *MenuModel) select_() {
	idx := m.cursor
	if m.resume != nil {
		if idx == 0 {
			m.choice = menuResume
			return
		}
		idx--
	}
	if idx < len(m.presets) {
		m.choice = menuNewGame
		m.picked = m.presets[idx]
		return
	}
	m.choice = menuScoreboard
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(" InertiCorp "), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("How long can you survive the board?"), m.width))
	b.WriteString("\n\n")

	line := func(i int, text string) {
		style := lipgloss.NewStyle()
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		b.WriteString(centerText(style.Render(cursor+text), m.width))
		b.WriteString("\n")
	}

	i := 0
	if m.resume != nil {
		line(i, fmt.Sprintf("Resume (%s, Q%d)", m.resume.Difficulty, m.resume.Quarter))
		i++
	}
	for _, p := range m.presets {
		line(i, "New game — "+string(p))
		i++
	}
	line(i, "Hall of Fame")

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("up/down: move  enter: select  q: quit"), m.width))
	return b.String()
}

// IsQuitting reports whether the user asked to exit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// Choice returns what the user picked, if anything yet.
func (m MenuModel) Choice() menuChoice { return m.choice }

// Picked returns the difficulty chosen for a new game.
func (m MenuModel) Picked() config.Preset { return m.picked }

// Resume returns the autosave entry offered for resuming.
func (m MenuModel) Resume() *storage.SaveEntry { return m.resume }
