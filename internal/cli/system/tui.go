package system

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/storage"
	"github.com/julianstephens/burnoutguard/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(storeSource{ctx: ctx}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited with error: %w", err)
	}
	return nil
}

// storeSource feeds the dashboard from persisted events and tasks.
type storeSource struct {
	ctx *cli.Context
}

func (s storeSource) Snapshot() (tui.Snapshot, error) {
	events, err := s.ctx.Store.GetAllEvents()
	if err != nil {
		return tui.Snapshot{}, fmt.Errorf("failed to load events: %w", err)
	}
	tasks, err := s.ctx.Store.GetAllTasks()
	if err != nil {
		return tui.Snapshot{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	now := s.ctx.Engine.Now()
	return tui.Snapshot{
		Report: s.ctx.Engine.AnalyzeAt(now, events, tasks),
		Tasks:  tasks,
		Now:    now,
	}, nil
}

func (s storeSource) CompleteTask(id string) error {
	task, err := s.ctx.Store.GetTask(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("task not found: %s", id)
	}
	if err != nil {
		return err
	}
	task.Completed = true
	return s.ctx.Store.UpdateTask(task)
}
