package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/tui/components/interventions"
	"github.com/julianstephens/burnoutguard/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateOverview SessionState = iota
	StateInterventions
	StateTasks
)

var tabTitles = []string{"Overview", "Interventions", "Tasks"}

// Snapshot is everything the dashboard renders for one refresh.
type Snapshot struct {
	Report models.Report
	Tasks  []models.Task
	Now    time.Time
}

// Source produces dashboard snapshots and applies task changes.
type Source interface {
	Snapshot() (Snapshot, error)
	CompleteTask(id string) error
}

type snapshotMsg struct {
	snapshot Snapshot
}

type errMsg struct {
	err error
}

type Model struct {
	source            Source
	state             SessionState
	keys              KeyMap
	help              help.Model
	gauge             progress.Model
	snapshot          Snapshot
	loaded            bool
	err               error
	interventionsView interventions.Model
	taskList          tasklist.Model
	quitting          bool
	width             int
	height            int
}

func NewModel(source Source) Model {
	return Model{
		source:            source,
		state:             StateOverview,
		keys:              DefaultKeyMap(),
		help:              help.New(),
		gauge:             progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		interventionsView: interventions.New(0, 0),
		taskList:          tasklist.New(nil, time.Time{}, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

// load fetches a fresh snapshot off the update loop.
func (m Model) load() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		snap, err := source.Snapshot()
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotMsg{snapshot: snap}
	}
}

func (m Model) complete(id string) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		if err := source.CompleteTask(id); err != nil {
			return errMsg{err: err}
		}
		snap, err := source.Snapshot()
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotMsg{snapshot: snap}
	}
}

func (m *Model) setSnapshot(snap Snapshot) {
	m.snapshot = snap
	m.loaded = true
	m.err = nil
	m.interventionsView.SetInterventions(snap.Report.Interventions)
	m.taskList.SetTasks(snap.Tasks, snap.Now)
}

func (m *Model) resize() {
	// Tabs, help and padding.
	h := m.height - 6
	if h < 0 {
		h = 0
	}
	w := m.width - 4
	if w < 0 {
		w = 0
	}
	m.interventionsView.SetSize(w, h)
	m.taskList.SetSize(w, h)
}
