package interventions

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/burnoutguard/internal/models"
)

var (
	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(4)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	priorityColors = map[models.InterventionPriority]lipgloss.Color{
		models.InterventionPriorityLow:      lipgloss.Color("42"),
		models.InterventionPriorityMedium:   lipgloss.Color("214"),
		models.InterventionPriorityHigh:     lipgloss.Color("202"),
		models.InterventionPriorityCritical: lipgloss.Color("196"),
	}
)

type Model struct {
	viewport      viewport.Model
	Interventions []models.Intervention
	width         int
	height        int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.Interventions) == 0 {
		return "No interventions needed right now."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetInterventions(list []models.Intervention) {
	m.Interventions = list
	m.Render()
}

// Render lays the ranked list out in the viewport.
func (m *Model) Render() {
	var b strings.Builder
	for i, iv := range m.Interventions {
		priority := lipgloss.NewStyle().Foreground(priorityColors[iv.Priority]).Render(string(iv.Priority))
		fmt.Fprintf(&b, "%s%s %s\n", rankStyle.Render(fmt.Sprintf("%d.", i+1)), titleStyle.Render(iv.Title), priority)
		fmt.Fprintf(&b, "%s%s\n", rankStyle.Render(""), iv.Description)
		fmt.Fprintf(&b, "%s%s\n\n", rankStyle.Render(""),
			detailStyle.Render(fmt.Sprintf("%s | impact %.0f | effort %.0f", iv.Type, iv.ImpactScore, iv.EffortScore)))
	}
	m.viewport.SetContent(b.String())
}
