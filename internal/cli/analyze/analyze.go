package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/logger"
	"github.com/julianstephens/burnoutguard/internal/metrics"
	"github.com/julianstephens/burnoutguard/internal/models"
	"github.com/julianstephens/burnoutguard/internal/storage/sqlite"
	"github.com/julianstephens/burnoutguard/internal/utils"
	"github.com/julianstephens/burnoutguard/internal/watch"
)

// Input selects where events and tasks come from. Each file, when given,
// replaces the matching collection from storage.
type Input struct {
	Events string `type:"existingfile" help:"Read events from a JSON file instead of storage."`
	Tasks  string `type:"existingfile" help:"Read tasks from a JSON file instead of storage."`
	Format string `short:"f" help:"Output format (text|json|prom). Defaults to the configured format."`
	At     string `help:"Analyze as of this ISO-8601 timestamp instead of now."`
}

func (in *Input) format(ctx *cli.Context) (string, error) {
	format := in.Format
	if format == "" && ctx.Config != nil {
		format = ctx.Config.Format
	}
	if format == "" {
		format = constants.DefaultFormat
	}
	switch format {
	case constants.FormatText, constants.FormatJSON, constants.FormatPrometheus:
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q (expected text|json|prom)", format)
}

func (in *Input) load(ctx *cli.Context) ([]models.CalendarEvent, []models.Task, error) {
	var (
		events []models.CalendarEvent
		tasks  []models.Task
		err    error
	)

	if in.Events != "" {
		events, err = readFile(in.Events, models.DecodeEvents)
	} else {
		err = ctx.LoadStore()
		if err == nil {
			events, err = ctx.Store.GetAllEvents()
		}
	}
	if err != nil {
		return nil, nil, err
	}

	if in.Tasks != "" {
		tasks, err = readFile(in.Tasks, models.DecodeTasks)
	} else {
		err = ctx.LoadStore()
		if err == nil {
			tasks, err = ctx.Store.GetAllTasks()
		}
	}
	if err != nil {
		return nil, nil, err
	}
	return events, tasks, nil
}

func readFile[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func (in *Input) report(ctx *cli.Context) (models.Report, error) {
	events, tasks, err := in.load(ctx)
	if err != nil {
		return models.Report{}, err
	}
	if in.At == "" {
		return ctx.Engine.Analyze(events, tasks), nil
	}
	at, err := utils.ParseTimestamp(in.At)
	if err != nil {
		return models.Report{}, fmt.Errorf("invalid --at: %w", err)
	}
	return ctx.Engine.AnalyzeAt(at, events, tasks), nil
}

// Write renders a report in the given format.
func Write(w io.Writer, format string, r models.Report) error {
	switch format {
	case constants.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case constants.FormatPrometheus:
		return metrics.Write(w, r)
	default:
		_, err := io.WriteString(w, RenderText(r))
		return err
	}
}

type AnalyzeCmd struct {
	Input `embed:""`
}

func (c *AnalyzeCmd) Run(ctx *cli.Context) error {
	format, err := c.format(ctx)
	if err != nil {
		return err
	}
	report, err := c.report(ctx)
	if err != nil {
		return err
	}
	return Write(ctx.Stdout(), format, report)
}

type WatchCmd struct {
	Input    `embed:""`
	Debounce time.Duration `help:"Quiet period before re-analyzing after a change." default:"200ms"`
}

// paths lists the files whose changes trigger a new analysis.
func (c *WatchCmd) paths(ctx *cli.Context) ([]string, error) {
	var paths []string
	if c.Events != "" {
		paths = append(paths, c.Events)
	}
	if c.Tasks != "" {
		paths = append(paths, c.Tasks)
	}
	if c.Events != "" && c.Tasks != "" {
		return paths, nil
	}
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, fmt.Errorf("watch needs --events and --tasks files or a SQLite store")
	}
	db := store.GetConfigPath()
	return append(paths, db, db+"-wal"), nil
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	format, err := c.format(ctx)
	if err != nil {
		return err
	}
	paths, err := c.paths(ctx)
	if err != nil {
		return err
	}

	analyze := func() {
		report, err := c.report(ctx)
		if err != nil {
			logger.Error("analysis failed", "error", err)
			ctx.Printf("Error: %v\n", err)
			return
		}
		if err := Write(ctx.Stdout(), format, report); err != nil {
			logger.Error("failed to write report", "error", err)
		}
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyze()
	return watch.Files(sigCtx, paths, c.Debounce, analyze)
}
