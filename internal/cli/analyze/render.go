package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/burnoutguard/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)

	riskColors = map[models.RiskLevel]lipgloss.Color{
		models.RiskLow:      lipgloss.Color("42"),
		models.RiskMedium:   lipgloss.Color("214"),
		models.RiskHigh:     lipgloss.Color("202"),
		models.RiskCritical: lipgloss.Color("196"),
	}
)

// RenderText formats a report for a terminal.
func RenderText(r models.Report) string {
	s, f := r.StressScore, r.Factors
	risk := lipgloss.NewStyle().Bold(true).Foreground(riskColors[s.RiskLevel]).
		Render(strings.ToUpper(string(s.RiskLevel)))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1f/100 (%s risk)\n\n", headerStyle.Render("Stress score"), s.TotalScore, risk)

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Factors"))
	fmt.Fprintf(&b, "  Calendar  %5.1f  %d events, %.1f%% of waking hours (today %.1f%%)\n",
		s.CalendarFactor, f.EventsNext7Days, f.CalendarDensity, f.CalendarDensityToday)
	fmt.Fprintf(&b, "  Tasks     %5.1f  %d overdue, %d due by tomorrow, %d high priority\n",
		s.TaskFactor, f.OverdueTasks, f.ImmediateActionTasks, f.HighPriorityTasks)
	fmt.Fprintf(&b, "  Sleep     %5.1f  %.1f hours available per night\n", s.SleepFactor, f.SleepHoursAvailable)
	fmt.Fprintf(&b, "  Breaks    %5.1f  %.0f minutes between events on average\n", s.BreakFactor, f.AverageBreakLength)
	fmt.Fprintf(&b, "\n%s\n", f.SleepQualityMessage)

	if len(r.Predictions) > 0 {
		fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Outlook"))
		for _, p := range r.Predictions {
			fmt.Fprintf(&b, "  • %s\n", p)
		}
	}

	if len(r.Interventions) == 0 {
		fmt.Fprintf(&b, "\n%s\n", mutedStyle.Render("No interventions needed."))
		return b.String()
	}

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("Interventions"))
	for i, iv := range r.Interventions {
		fmt.Fprintf(&b, "  %d. %s [%s]\n", i+1, iv.Title, iv.Priority)
		fmt.Fprintf(&b, "     %s\n", iv.Description)
		fmt.Fprintf(&b, "     %s\n", mutedStyle.Render(fmt.Sprintf("impact %.0f, effort %.0f", iv.ImpactScore, iv.EffortScore)))
	}
	return b.String()
}
