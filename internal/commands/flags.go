package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/sprout/internal/core/config"
	"github.com/hay-kot/sprout/internal/habit"
	"github.com/hay-kot/sprout/internal/remote"
	"github.com/hay-kot/sprout/internal/rowstore"
	"github.com/hay-kot/sprout/internal/rowstore/sheets"
	"github.com/hay-kot/sprout/internal/rowstore/sqlite"
	"github.com/hay-kot/sprout/internal/taskorder"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "sprout", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "sprout")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/sprout/sprout.log
// On Linux: $XDG_STATE_HOME/sprout/sprout.log (defaults to ~/.local/state/sprout/sprout.log)
func DefaultLogFile() string {
	// Check XDG_STATE_HOME first (works on both macOS and Linux)
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "sprout", "sprout.log")
	}

	home, _ := os.UserHomeDir()

	// On macOS, use ~/Library/Logs
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "sprout", "sprout.log")
	}

	// On Linux, use ~/.local/state
	return filepath.Join(home, ".local", "state", "sprout", "sprout.log")
}

// Store opens the configured local row store. Only valid when no remote is
// configured.
func (f *Flags) Store(ctx context.Context) (rowstore.Store, error) {
	cfg := f.Config
	switch cfg.Backend.Driver {
	case config.DriverMemory:
		return rowstore.NewMemory(), nil
	case config.DriverJSONFile:
		return rowstore.NewJSONFile(cfg.StorePath()), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.StorePath())
		if err != nil {
			return rowstore.Store{}, fmt.Errorf("open sqlite store: %w", err)
		}
		return db.Store(), nil
	case config.DriverSheets:
		return sheets.Open(ctx, sheets.Config{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			CredentialsPath: cfg.Sheets.CredentialsPath,
			TokenPath:       cfg.Sheets.TokenPath,
		})
	default:
		return rowstore.Store{}, fmt.Errorf("unknown backend driver %q", cfg.Backend.Driver)
	}
}

// Remote returns the operation layer the sync engine talks to: an HTTP
// client when a remote is configured, otherwise a local binding over the
// configured backend.
func (f *Flags) Remote(ctx context.Context) (habit.Remote, error) {
	if f.Config.Remote != "" {
		return remote.NewClient(f.Config.Remote, nil), nil
	}

	store, err := f.Store(ctx)
	if err != nil {
		return nil, err
	}
	return remote.NewLocal(store), nil
}

// Session builds and initializes a sync engine plus the client-side task
// order, ready for a command to use.
func (f *Flags) Session(ctx context.Context) (*habit.Engine, *taskorder.Order, error) {
	rem, err := f.Remote(ctx)
	if err != nil {
		return nil, nil, err
	}

	engine := habit.NewEngine(rem)
	if err := engine.Initialize(ctx); err != nil {
		return nil, nil, err
	}

	order, err := taskorder.Load(f.Config.TaskOrderFile())
	if err != nil {
		return nil, nil, err
	}

	return engine, order, nil
}
