package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/burnoutguard/internal/classifier"
	"github.com/julianstephens/burnoutguard/internal/config"
	"github.com/julianstephens/burnoutguard/internal/constants"
	"github.com/julianstephens/burnoutguard/internal/engine"
	"github.com/julianstephens/burnoutguard/internal/keyring"
	"github.com/julianstephens/burnoutguard/internal/logger"
	"github.com/julianstephens/burnoutguard/internal/storage"
	"github.com/julianstephens/burnoutguard/internal/storage/postgres"
	"github.com/julianstephens/burnoutguard/internal/storage/sqlite"
)

type Context struct {
	Store      storage.Provider
	Engine     *engine.Engine
	Config     *config.Config
	ConfigPath string
	Out        io.Writer

	loaded bool
}

// Stdout is where commands write their results.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// LoadStore opens the store once. Commands that only read input files never
// call it, so they work without an initialized database.
func (c *Context) LoadStore() error {
	if c.loaded {
		return nil
	}
	if c.Store == nil {
		return errors.New("no storage configured")
	}
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.loaded = true
	return nil
}

// MarkLoaded records that the store was opened elsewhere, e.g. by Init.
func (c *Context) MarkLoaded() {
	c.loaded = true
}

// ResolveStorage picks the storage location. The environment wins, then the
// command line, then a non-default config value, then the OS keyring.
// Trusted locations may carry credentials.
func ResolveStorage(flag string, cfg *config.Config, getenv func(string) string) (location string, trusted bool) {
	if v := strings.TrimSpace(getenv(constants.EnvDBConnection)); v != "" {
		return v, true
	}
	if flag != "" {
		return flag, false
	}
	if cfg.Storage != "" && cfg.Storage != constants.DefaultStoragePath {
		return cfg.Storage, false
	}
	if connStr, err := keyring.GetConnectionString(); err == nil {
		return connStr, true
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("keyring lookup skipped", "error", err)
	}
	return constants.DefaultStoragePath, false
}

// NewStore builds the provider for a storage location. Untrusted PostgreSQL
// connection strings must not embed a password.
func NewStore(location string, trusted bool) (storage.Provider, error) {
	if !config.IsPostgresConnString(location) && !strings.Contains(location, "host=") {
		return sqlite.NewStore(location), nil
	}

	if err := postgres.ValidateConnString(location); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		if !trusted {
			return nil, fmt.Errorf("%w. Use one of: 'burnoutguard keyring set', %s, or a .pgpass file",
				err, constants.EnvDBConnection)
		}
	}
	return postgres.New(location), nil
}

// NewEngine wires an analysis engine from configuration.
func NewEngine(cfg *config.Config, opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithObserver(logger.NewObserver(nil)),
		engine.WithInterventionLimit(cfg.InterventionLimit),
	}
	if len(cfg.Classifier.HighStress) > 0 || len(cfg.Classifier.Recreational) > 0 {
		base = append(base, engine.WithClassifier(classifier.NewKeyword(cfg.Classifier.HighStress, cfg.Classifier.Recreational)))
	}
	if len(cfg.Classifier.OptionalEvents) > 0 {
		base = append(base, engine.WithOptionalKeywords(cfg.Classifier.OptionalEvents...))
	}
	return engine.New(append(base, opts...)...)
}
