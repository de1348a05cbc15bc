package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/burnoutguard/internal/models"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(10)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

var riskColors = map[models.RiskLevel]lipgloss.Color{
	models.RiskLow:      lipgloss.Color("42"),
	models.RiskMedium:   lipgloss.Color("214"),
	models.RiskHigh:     lipgloss.Color("202"),
	models.RiskCritical: lipgloss.Color("196"),
}

// RiskStyle colors a risk level badge.
func RiskStyle(level models.RiskLevel) lipgloss.Style {
	c, ok := riskColors[level]
	if !ok {
		c = lipgloss.Color("252")
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
