package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/burnoutguard/internal/backup"
	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/storage/sqlite"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the database." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List database snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the database with a snapshot."`
}

func backupManager(ctx *cli.Context) (*backup.Manager, *sqlite.Store, error) {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil, errors.New("backups are only supported for SQLite storage")
	}
	return backup.NewManager(store.GetConfigPath()), store, nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	m, _, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := m.Create()
	if err != nil {
		return err
	}
	ctx.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	m, _, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Printf("No backups in %s\n", m.Dir())
		return nil
	}
	for _, b := range backups {
		ctx.Printf("%s  %8d bytes  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Size, b.Path)
	}
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Snapshot to restore. Defaults to the newest."`
	Yes  bool   `short:"y" help:"Skip confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	m, store, err := backupManager(ctx)
	if err != nil {
		return err
	}

	path := c.File
	if path == "" {
		backups, err := m.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups found in %s", m.Dir())
		}
		path = backups[0].Path
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Restore %s? The current database is snapshotted first.", path)).
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	if err := m.Restore(path); err != nil {
		return err
	}
	ctx.Printf("Restored database from: %s\n", path)
	return nil
}
