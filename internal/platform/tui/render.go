package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	phaseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	feedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	crisisStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	endStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

const meterBarWidth = 10

// renderGame builds the full-screen view for one run.
func renderGame(m GameModel) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("InertiCorp"))
	sb.WriteString("  ")
	sb.WriteString(phaseStyle.Render(fmt.Sprintf("Q%d — %s", m.state.Quarter, m.state.Phase)))
	sb.WriteString("\n\n")

	sb.WriteString(renderStatus(m.state))
	sb.WriteString("\n")
	sb.WriteString(renderMeters(m.state.Meters))
	sb.WriteString("\n")

	if m.state.Terminal() {
		sb.WriteString(renderEnding(m.state))
	} else {
		switch m.state.Phase {
		case sim.PhasePlayCards:
			if m.mode == modeExchange {
				sb.WriteString(renderExchange(m))
			} else {
				sb.WriteString(renderHand(m))
			}
		case sim.PhaseCrisis:
			sb.WriteString(renderCrisis(m))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(renderFeed(m.feed))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(helpLine(m)))
	return sb.String()
}

// renderStatus shows the board-facing numbers.
func renderStatus(st sim.State) string {
	favor := fmt.Sprintf("Favor %d", st.Tenure.Favor)
	switch {
	case st.Tenure.Favor >= 60:
		favor = goodStyle.Render(favor)
	case st.Tenure.Favor >= 40:
		favor = warnStyle.Render(favor)
	default:
		favor = badStyle.Render(favor)
	}

	parts := []string{
		favor,
		fmt.Sprintf("Capital %d", st.Capital),
		fmt.Sprintf("Target $%dM", st.Directive.Target),
		fmt.Sprintf("Booked $%dM", st.QuarterProfit-st.QuarterFines),
	}
	if st.Tenure.EvilScore > 0 {
		parts = append(parts, labelStyle.Render(fmt.Sprintf("Evil %d", st.Tenure.EvilScore)))
	}
	if n := len(st.Deferred); n > 0 {
		parts = append(parts, labelStyle.Render(fmt.Sprintf("Deferred %d", n)))
	}
	return strings.Join(parts, "   ") + "\n"
}

// renderMeters draws one bar per company meter.
func renderMeters(ms sim.Meters) string {
	var sb strings.Builder
	for _, m := range []sim.Meter{
		sim.MeterDelivery, sim.MeterMorale, sim.MeterGovernance,
		sim.MeterAlignment, sim.MeterRunway,
	} {
		v := ms.Get(m)
		sb.WriteString(fmt.Sprintf("  %-11s %s %3d\n", meterText(m), meterBar(v), v))
	}
	return sb.String()
}

func meterBar(v int) string {
	filled := v * meterBarWidth / 100
	if filled > meterBarWidth {
		filled = meterBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", meterBarWidth-filled)
	switch {
	case v < 10:
		return badStyle.Render(bar)
	case v < 25:
		return warnStyle.Render(bar)
	default:
		return goodStyle.Render(bar)
	}
}

// renderHand lists playable cards with cost and affinity.
func renderHand(m GameModel) string {
	if len(m.state.Hand) == 0 {
		return labelStyle.Render("  No proposals left this quarter.") + "\n"
	}
	var sb strings.Builder
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  Proposals (%d/%d played):",
		m.state.CardsPlayed, m.engine.Tuning().MaxCardsPerQuarter)))
	sb.WriteString("\n")
	for i, id := range m.state.Hand {
		card, ok := m.engine.Catalog().Card(id)
		if !ok {
			continue
		}
		cost := card.Cost + sim.PositionCost(m.state.CardsPlayed)
		line := fmt.Sprintf("  [%d] %-24s %d PC", i+1, card.Title, cost)
		if card.Affinity != sim.MeterNone {
			line += labelStyle.Render("  (" + meterText(card.Affinity) + ")")
		}
		if !m.engine.CanPlay(m.state, id) {
			line = helpStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// renderExchange lists the meters that can be traded for capital.
func renderExchange(m GameModel) string {
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("  Trade a meter for 1 capital:"))
	sb.WriteString("\n")
	for i, meter := range []sim.Meter{
		sim.MeterDelivery, sim.MeterMorale, sim.MeterGovernance,
		sim.MeterAlignment, sim.MeterRunway,
	} {
		line := fmt.Sprintf("  [%d] %-11s -%d", i+1, meterText(meter), sim.ExchangeCost(meter))
		if !m.engine.CanExchange(m.state, meter) {
			line = helpStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// renderCrisis shows the pending crisis and its response options.
func renderCrisis(m GameModel) string {
	if m.state.PendingCrisis == "" {
		return labelStyle.Render("  A quiet quarter. No fires to fight.") + "\n"
	}
	crisis, ok := m.engine.Catalog().Crisis(m.state.PendingCrisis)
	if !ok {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(crisisStyle.Render("  CRISIS: " + crisis.Title))
	sb.WriteString("\n")
	for i, c := range crisis.Choices {
		line := fmt.Sprintf("  [%d] %s", i+1, c.Title)
		if c.CapitalCost > 0 {
			line += labelStyle.Render(fmt.Sprintf("  (%d PC)", c.CapitalCost))
		}
		if c.Intensity > 0 {
			line += badStyle.Render("  [ruthless]")
		}
		if !m.engine.CanChoose(m.state, c.ID) {
			line = helpStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	if m.engine.CanDefer(m.state) {
		sb.WriteString(labelStyle.Render("  [f] Kick it down the road"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderEnding summarizes a finished tenure.
func renderEnding(st sim.State) string {
	var sb strings.Builder
	if st.Tenure.Retired {
		sb.WriteString(endStyle.Render("  You retired on your own terms."))
	} else {
		sb.WriteString(endStyle.Render("  The board has ousted you."))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Quarters survived: %d\n", st.Tenure.QuartersSurvived))
	sb.WriteString(fmt.Sprintf("  Lifetime profit:   $%dM\n", st.Tenure.TotalProfit))
	sb.WriteString(fmt.Sprintf("  Golden parachute:  $%dM\n", sim.Parachute(st.Tenure)))
	if st.Tenure.EvilScore > 0 {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  Evil score:        %d\n", st.Tenure.EvilScore)))
	}
	return sb.String()
}

func renderFeed(feed []string) string {
	if len(feed) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, line := range feed {
		sb.WriteString(feedStyle.Render("  · " + line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// helpLine is context-sensitive per phase.
func helpLine(m GameModel) string {
	if m.state.Terminal() {
		return "b: menu  q: quit"
	}
	if m.mode == modeExchange {
		return "1-5: trade meter  other: cancel"
	}
	switch m.state.Phase {
	case sim.PhasePlayCards:
		return "1-9: play  t: trade meter  enter: end phase  q: quit"
	case sim.PhaseCrisis:
		if m.state.PendingCrisis == "" {
			return "enter: continue  q: quit"
		}
		return "1-9: respond  f: defer  q: quit"
	default:
		return "enter: continue  q: quit"
	}
}
