package tasklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
)

// CompleteTaskMsg asks the parent model to mark a task done.
type CompleteTaskMsg struct {
	ID string
}

type Item struct {
	Task models.Task
	Now  time.Time
}

func (i Item) Title() string {
	switch {
	case i.Task.Completed:
		return "✓ " + i.Task.Title
	case i.Task.IsOverdue(i.Now):
		return "! " + i.Task.Title + " (overdue)"
	}
	return i.Task.Title
}

func (i Item) Description() string {
	due := "no due date"
	if i.Task.DueDate != nil {
		due = "due " + i.Task.DueDate.Format(constants.DisplayFormat)
	}
	return fmt.Sprintf("%s | %s", i.Task.Priority, due)
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Complete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "mark done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, now time.Time, width, height int) Model {
	l := list.New(items(tasks, now), list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Complete}
	}

	return Model{list: l, keys: keys}
}

func items(tasks []models.Task, now time.Time) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t, Now: now}
	}
	return out
}

func (m *Model) SetTasks(tasks []models.Task, now time.Time) {
	m.list.SetItems(items(tasks, now))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Complete) {
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Task.Completed {
				return m, func() tea.Msg { return CompleteTaskMsg{ID: i.Task.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks yet.\n  Add one with 'burnoutguard tasks add'."
	}
	return m.list.View()
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
