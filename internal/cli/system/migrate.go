package system

import (
	"fmt"

	"github.com/julianstephens/burnoutguard/internal/backup"
	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current >= latest {
		ctx.Println("No migrations to apply. Database is up to date.")
		return nil
	}

	if store, ok := ctx.Store.(*sqlite.Store); ok {
		path, err := backup.NewManager(store.GetConfigPath()).Create()
		if err != nil {
			return fmt.Errorf("failed to back up database before migrating: %w", err)
		}
		ctx.Printf("Backed up database to: %s\n", path)
	}

	// Init applies whatever is pending and leaves data in place.
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.Printf("Successfully applied %d migration(s).\n", latest-current)
	return nil
}
