package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.err != nil:
		content = docStyle.Render(dangerStyle.Render("Error: " + m.err.Error()))
	case !m.loaded:
		content = docStyle.Render("Analyzing schedule...")
	default:
		switch m.state {
		case StateOverview:
			content = m.viewOverview()
		case StateInterventions:
			content = docStyle.Render(m.interventionsView.View())
		case StateTasks:
			content = docStyle.Render(m.taskList.View())
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewOverview() string {
	score := m.snapshot.Report.StressScore
	factors := m.snapshot.Report.Factors

	var b strings.Builder
	fmt.Fprintf(&b, "Stress score %.1f  %s\n\n", score.TotalScore,
		RiskStyle(score.RiskLevel).Render(strings.ToUpper(string(score.RiskLevel))))

	for _, row := range []struct {
		label string
		value float64
	}{
		{"Calendar", score.CalendarFactor},
		{"Tasks", score.TaskFactor},
		{"Sleep", score.SleepFactor},
		{"Breaks", score.BreakFactor},
	} {
		fmt.Fprintf(&b, "%s %s %5.1f\n", labelStyle.Render(row.label), m.gauge.ViewAs(row.value/100), row.value)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf(
		"%d events this week | density %.1f%% (today %.1f%%) | avg break %.0f min",
		factors.EventsNext7Days, factors.CalendarDensity, factors.CalendarDensityToday, factors.AverageBreakLength)))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf(
		"%d overdue | %d due soon | %d high priority",
		factors.OverdueTasks, factors.ImmediateActionTasks, factors.HighPriorityTasks)))
	fmt.Fprintf(&b, "\n%s\n", factors.SleepQualityMessage)

	if len(m.snapshot.Report.Predictions) > 0 {
		b.WriteString("\n")
		for _, p := range m.snapshot.Report.Predictions {
			fmt.Fprintf(&b, "• %s\n", p)
		}
	}

	return docStyle.Render(b.String())
}
