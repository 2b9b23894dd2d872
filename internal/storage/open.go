package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Backend selects where the timer configuration is kept.
type Backend string

const (
	BackendYAML   Backend = "yaml"
	BackendSQLite Backend = "sqlite"
)

// Stores bundles the configuration store with the history database.
// History always lives in SQLite; the configuration follows the backend.
type Stores struct {
	Config  ConfigStore
	History *SQLiteStore
}

// Open opens the stores under dir.
func Open(ctx context.Context, backend Backend, dir, profile string) (*Stores, error) {
	history, err := OpenSQLiteStore(ctx, dir, profile)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendSQLite:
		return &Stores{Config: history, History: history}, nil
	case BackendYAML, "":
		return &Stores{Config: NewYAMLStore(filepath.Join(dir, TimerFileName)), History: history}, nil
	default:
		history.Close()
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Close closes both stores once.
func (stores *Stores) Close() error {
	var errs []error
	if stores.Config != nil && stores.Config != ConfigStore(stores.History) {
		errs = append(errs, stores.Config.Close())
	}
	if stores.History != nil {
		errs = append(errs, stores.History.Close())
	}
	return errors.Join(errs...)
}
