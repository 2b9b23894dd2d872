package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"aerialtimer/internal/core/model"
	"gopkg.in/yaml.v3"
)

// TimerFileName is the YAML file the timer configuration is kept in.
const TimerFileName = "timer.yaml"

// YAMLStore keeps the configuration in a single YAML file.
type YAMLStore struct {
	path string
}

// NewYAMLStore returns a store backed by the file at path. The file and
// its directory are created on the first Save.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Path returns the backing file.
func (store *YAMLStore) Path() string {
	return store.path
}

// Load reads the configuration. If the file does not exist, defaults are
// returned.
func (store *YAMLStore) Load(ctx context.Context) (model.TimerConfig, error) {
	if err := ctx.Err(); err != nil {
		return model.DefaultConfig(), err
	}

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultConfig(), nil
		}
		return model.DefaultConfig(), fmt.Errorf("read timer config: %w", err)
	}

	record := defaultRecord()
	if err := yaml.Unmarshal(rawData, &record); err != nil {
		return model.DefaultConfig(), fmt.Errorf("parse timer config yaml: %w", err)
	}
	return record.config(), nil
}

// Save writes the normalized configuration.
func (store *YAMLStore) Save(ctx context.Context, config model.TimerConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(newConfigRecord(config.Normalize()))
	if err != nil {
		return fmt.Errorf("marshal timer config yaml: %w", err)
	}

	// Write next to the target and rename so a crash never leaves half a file.
	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return fmt.Errorf("write timer config: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace timer config: %w", err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (store *YAMLStore) Close() error {
	return nil
}
