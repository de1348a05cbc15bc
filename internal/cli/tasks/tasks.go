package tasks

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/storage"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

type TaskAddCmd struct {
	Title       string `arg:"" optional:"" help:"Task title."`
	Due         string `help:"Due timestamp (ISO-8601)."`
	Priority    string `short:"p" help:"Priority (low|medium|high)." default:"medium" enum:"low,medium,high"`
	Description string `short:"d" help:"Free-text description."`
	ID          string `help:"Explicit task id. A random one is generated when omitted."`
	Interactive bool   `short:"i" help:"Prompt for the task fields."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.prompt(); err != nil {
			return err
		}
	}
	if c.Title == "" {
		return errors.New("task title is required (or use --interactive)")
	}

	task, err := c.task()
	if err != nil {
		return err
	}
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	if err := ctx.Store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	ctx.Printf("Added task %q (%s)\n", task.Title, task.ID)
	return nil
}

func (c *TaskAddCmd) task() (models.Task, error) {
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return models.Task{}, err
	}

	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	task := models.Task{
		ID:          id,
		Title:       c.Title,
		Description: c.Description,
		Priority:    priority,
	}
	if c.Due != "" {
		due, err := utils.ParseTimestamp(c.Due)
		if err != nil {
			return models.Task{}, fmt.Errorf("invalid --due: %w", err)
		}
		task.DueDate = &due
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (c *TaskAddCmd) prompt() error {
	if c.Priority == "" {
		c.Priority = string(models.PriorityMedium)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&c.Title).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Title("Due (optional)").Placeholder("2025-03-12T17:00:00").Value(&c.Due).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := utils.ParseTimestamp(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(models.PriorityLow)),
					huh.NewOption("Medium", string(models.PriorityMedium)),
					huh.NewOption("High", string(models.PriorityHigh)),
				).
				Value(&c.Priority),
			huh.NewText().Title("Description").Value(&c.Description),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	return nil
}

type TaskListCmd struct {
	All bool `short:"a" help:"Include completed tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	now := ctx.Engine.Now()
	var shown []models.Task
	for _, t := range tasks {
		if c.All || !t.Completed {
			shown = append(shown, t)
		}
	}
	if len(shown) == 0 {
		ctx.Println("No tasks found.")
		return nil
	}

	// Due tasks first, earliest deadline on top.
	sort.SliceStable(shown, func(i, j int) bool {
		a, b := shown[i].DueDate, shown[j].DueDate
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.Before(*b)
	})

	for _, t := range shown {
		status := "[ ]"
		switch {
		case t.Completed:
			status = "[x]"
		case t.IsOverdue(now):
			status = "[!]"
		}
		due := "no due date"
		if t.DueDate != nil {
			due = "due " + t.DueDate.Format(constants.DisplayFormat)
		}
		ctx.Printf("%s %-6s %s (%s) [%s]\n", status, t.Priority, t.Title, due, t.ID)
	}
	return nil
}

type TaskDoneCmd struct {
	ID   string `arg:"" help:"Task id."`
	Undo bool   `help:"Mark the task as not completed."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	task, err := ctx.Store.GetTask(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("task not found: %s", c.ID)
	}
	if err != nil {
		return err
	}

	task.Completed = !c.Undo
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if task.Completed {
		ctx.Printf("Completed %q\n", task.Title)
	} else {
		ctx.Printf("Reopened %q\n", task.Title)
	}
	return nil
}

type TaskEditCmd struct {
	ID          string  `arg:"" help:"Task id."`
	Title       *string `help:"New title."`
	Description *string `short:"d" help:"New description."`
	Due         *string `help:"New due timestamp (ISO-8601). An empty value clears it."`
	Priority    *string `short:"p" help:"New priority (low|medium|high)."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	task, err := ctx.Store.GetTask(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("task not found: %s", c.ID)
	}
	if err != nil {
		return err
	}

	if c.Title != nil {
		task.Title = *c.Title
	}
	if c.Description != nil {
		task.Description = *c.Description
	}
	if c.Priority != nil {
		priority, err := models.ParsePriority(*c.Priority)
		if err != nil {
			return err
		}
		task.Priority = priority
	}
	if c.Due != nil {
		if *c.Due == "" {
			task.DueDate = nil
		} else {
			due, err := utils.ParseTimestamp(*c.Due)
			if err != nil {
				return fmt.Errorf("invalid --due: %w", err)
			}
			task.DueDate = &due
		}
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	ctx.Printf("Task updated: %s\n", task.Title)
	return nil
}

type TaskDeleteCmd struct {
	ID  string `arg:"" help:"Task id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	task, err := ctx.Store.GetTask(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("task not found: %s", c.ID)
	}
	if err != nil {
		return err
	}

	if !c.Yes {
		confirm := false
		if err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", task.Title)).
			Value(&confirm).
			Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
		if !confirm {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	ctx.Printf("Deleted task %q\n", task.Title)
	return nil
}

type TaskImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON file holding an array of tasks."`
}

func (c *TaskImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	tasks, err := models.DecodeTasks(f)
	if err != nil {
		return err
	}
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}

	if err := ctx.LoadStore(); err != nil {
		return err
	}
	n, err := ctx.Store.ImportTasks(tasks)
	if err != nil {
		return fmt.Errorf("failed to import tasks: %w", err)
	}
	ctx.Printf("Imported %d task(s) from %s\n", n, c.File)
	return nil
}
