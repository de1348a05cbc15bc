package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/julianstephens/burnoutguard/internal/backup"
	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/config"
	"github.com/julianstephens/burnoutguard/internal/storage"
	"github.com/julianstephens/burnoutguard/internal/storage/sqlite"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy events and tasks from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.MarkLoaded()
	ctx.Printf("Initialized storage at: %s\n", ctx.Store.GetConfigPath())

	if err := writeDefaultConfig(ctx); err != nil {
		return err
	}

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return errors.New("--force only supports SQLite storage")
	}
	dbPath := store.GetConfigPath()

	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		absSource, err := filepath.Abs(utils.ExpandHome(c.Source))
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		path, err := backup.NewManager(dbPath).Create()
		if err != nil {
			return fmt.Errorf("failed to back up existing database: %w", err)
		}
		ctx.Printf("Backed up existing database to: %s\n", path)
		if err := store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// writeDefaultConfig saves the active configuration when no file exists yet.
func writeDefaultConfig(ctx *cli.Context) error {
	if ctx.ConfigPath == "" {
		return nil
	}
	path := utils.ExpandHome(ctx.ConfigPath)
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	cfg := ctx.Config
	if cfg == nil {
		cfg = config.Default()
	}
	saved := *cfg
	// Credentials never go to disk.
	if saved.IsPostgres() {
		saved.Storage = config.Default().Storage
	}
	if err := config.Save(path, &saved); err != nil {
		return err
	}
	ctx.Printf("Wrote configuration to: %s\n", path)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	source, err := cli.NewStore(c.Source, false)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	return copyData(ctx, source)
}

func copyData(ctx *cli.Context, source storage.Provider) error {
	ctx.Println("  Migrating events...")
	events, err := source.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events from source: %w", err)
	}
	n, err := ctx.Store.ImportEvents(events)
	if err != nil {
		return fmt.Errorf("failed to import events: %w", err)
	}
	ctx.Printf("    Migrated %d events\n", n)

	ctx.Println("  Migrating tasks...")
	tasks, err := source.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks from source: %w", err)
	}
	n, err = ctx.Store.ImportTasks(tasks)
	if err != nil {
		return fmt.Errorf("failed to import tasks: %w", err)
	}
	ctx.Printf("    Migrated %d tasks\n", n)
	return nil
}
