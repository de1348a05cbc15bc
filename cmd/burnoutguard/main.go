package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/cli/analyze"
	"github.com/julianstephens/burnoutguard/internal/cli/events"
	"github.com/julianstephens/burnoutguard/internal/cli/system"
	"github.com/julianstephens/burnoutguard/internal/cli/tasks"
	"github.com/julianstephens/burnoutguard/internal/config"
	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/engine"
	"github.com/julianstephens/burnoutguard/internal/errors"
	"github.com/julianstephens/burnoutguard/internal/logger"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `name:"config" help:"Configuration file path." type:"string" default:"${config_path}"`
	Storage    string `help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or the OS keyring instead." type:"string"`
	Timezone   string `help:"IANA timezone used for 'now' (defaults to the configured timezone)."`
	Debug      bool   `help:"Log debug output to stderr."`
	LogJSON    bool   `help:"Write logs as JSON."`

	Analyze  analyze.AnalyzeCmd `cmd:"" help:"Compute the stress score and interventions." default:"withargs"`
	Watch    analyze.WatchCmd   `cmd:"" help:"Re-run the analysis whenever inputs change."`
	Init     system.InitCmd     `cmd:"" help:"Initialize storage and write a default configuration."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive dashboard."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the database connection string in the OS keyring."`
	Backup   system.BackupCmd   `cmd:"" help:"Create, list, and restore database snapshots."`
	Config   system.ConfigCmd   `cmd:"" help:"Inspect configuration."`
	Event    struct {
		Add    events.EventAddCmd    `cmd:"" help:"Add a calendar event."`
		List   events.EventListCmd   `cmd:"" help:"List events in the analysis window." default:"1"`
		Delete events.EventDeleteCmd `cmd:"" help:"Delete an event."`
		Import events.EventImportCmd `cmd:"" help:"Import events from a JSON file."`
	} `cmd:"" help:"Manage calendar events."`
	Task struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List open tasks." default:"1"`
		Done   tasks.TaskDoneCmd   `cmd:"" help:"Mark a task as completed."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit a task."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
		Import tasks.TaskImportCmd `cmd:"" help:"Import tasks from a JSON file."`
	} `cmd:"" help:"Manage tasks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Burnout risk analysis for calendars and task lists"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	cfg.ApplyEnv(os.Getenv)
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatal(fmt.Errorf("config: %w", err))
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		JSON:      CLI.LogJSON,
		ConfigDir: filepath.Dir(utils.ExpandHome(CLI.ConfigFile)),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	location, trusted := cli.ResolveStorage(CLI.Storage, cfg, os.Getenv)
	store, err := cli.NewStore(location, trusted)
	if err != nil {
		errors.Fatal(err)
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		errors.Fatal(fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err))
	}

	appCtx := &cli.Context{
		Store:      store,
		Engine:     cli.NewEngine(cfg, engine.WithClock(func() time.Time { return time.Now().In(loc) })),
		Config:     cfg,
		ConfigPath: CLI.ConfigFile,
	}
	logger.Debug("starting", "command", ctx.Command(), "storage", store.GetConfigPath(), "timezone", cfg.Timezone)

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}
