package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"aerialtimer/internal/core/model"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DatabaseFileName is the SQLite database kept in the data directory.
const DatabaseFileName = "aerialtimer.db"

// DefaultProfile is used when no profile key is configured.
const DefaultProfile = "default"

const configKeyPrefix = "timer_config:"

// Fixed-width UTC timestamps sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Workout is one recorded session.
type Workout struct {
	ID             uuid.UUID
	PresetName     string
	Config         model.TimerConfig
	StartedAt      time.Time
	EndedAt        time.Time
	Completed      bool
	ElapsedSeconds int
}

// SQLiteStore keeps the configuration as a JSON value in a key-value
// table, one key per profile, and the workout history in its own table.
type SQLiteStore struct {
	db      *sql.DB
	profile string
}

// OpenSQLiteStore opens (or creates) dir/aerialtimer.db.
func OpenSQLiteStore(ctx context.Context, dir, profile string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	if profile == "" {
		profile = DefaultProfile
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, DatabaseFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Serialize writers; the timer and the recorder share one connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, profile: profile}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (store *SQLiteStore) migrate(ctx context.Context) error {
	_, err := store.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}

	_, err = store.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS workout_sessions (
		id              TEXT PRIMARY KEY,
		preset_name     TEXT NOT NULL,
		config          TEXT NOT NULL,
		started_at      TEXT NOT NULL,
		ended_at        TEXT NOT NULL,
		completed       INTEGER NOT NULL,
		elapsed_seconds INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create workout_sessions table: %w", err)
	}
	return nil
}

// Profile returns the profile whose configuration this store reads.
func (store *SQLiteStore) Profile() string {
	return store.profile
}

// Load reads the profile's configuration; a missing key yields defaults.
func (store *SQLiteStore) Load(ctx context.Context) (model.TimerConfig, error) {
	var value string
	err := store.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`,
		configKeyPrefix+store.profile,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultConfig(), nil
		}
		return model.DefaultConfig(), fmt.Errorf("query timer config: %w", err)
	}

	record := defaultRecord()
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return model.DefaultConfig(), fmt.Errorf("decode timer config: %w", err)
	}
	return record.config(), nil
}

// Save writes the normalized configuration under the profile's key.
func (store *SQLiteStore) Save(ctx context.Context, config model.TimerConfig) error {
	value, err := json.Marshal(newConfigRecord(config.Normalize()))
	if err != nil {
		return fmt.Errorf("encode timer config: %w", err)
	}
	_, err = store.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
		configKeyPrefix+store.profile, string(value), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save timer config: %w", err)
	}
	return nil
}

// Record stores a workout. A zero ID is replaced with a new random one.
func (store *SQLiteStore) Record(ctx context.Context, workout Workout) (uuid.UUID, error) {
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	snapshot, err := json.Marshal(newConfigRecord(workout.Config.Normalize()))
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode workout config: %w", err)
	}

	completed := 0
	if workout.Completed {
		completed = 1
	}
	_, err = store.db.ExecContext(ctx,
		`INSERT INTO workout_sessions
			(id, preset_name, config, started_at, ended_at, completed, elapsed_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		workout.ID.String(),
		workout.PresetName,
		string(snapshot),
		workout.StartedAt.UTC().Format(timeLayout),
		workout.EndedAt.UTC().Format(timeLayout),
		completed,
		workout.ElapsedSeconds,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert workout: %w", err)
	}
	return workout.ID, nil
}

// Recent returns up to limit workouts, newest first.
func (store *SQLiteStore) Recent(ctx context.Context, limit int) ([]Workout, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := store.db.QueryContext(ctx,
		`SELECT id, preset_name, config, started_at, ended_at, completed, elapsed_seconds
		FROM workout_sessions
		ORDER BY started_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	return workouts, nil
}

func scanWorkout(rows *sql.Rows) (Workout, error) {
	var (
		workout                   Workout
		id, snapshot              string
		startedAt, endedAt        string
		completed, elapsedSeconds int
	)
	if err := rows.Scan(&id, &workout.PresetName, &snapshot, &startedAt, &endedAt, &completed, &elapsedSeconds); err != nil {
		return Workout{}, fmt.Errorf("scan workout: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return Workout{}, fmt.Errorf("parse workout id %q: %w", id, err)
	}
	record := defaultRecord()
	if err := json.Unmarshal([]byte(snapshot), &record); err != nil {
		return Workout{}, fmt.Errorf("decode workout config: %w", err)
	}
	if workout.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return Workout{}, fmt.Errorf("parse started_at: %w", err)
	}
	if workout.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
		return Workout{}, fmt.Errorf("parse ended_at: %w", err)
	}

	workout.ID = parsedID
	workout.Config = record.config()
	workout.Completed = completed != 0
	workout.ElapsedSeconds = elapsedSeconds
	return workout, nil
}

// Close closes the database.
func (store *SQLiteStore) Close() error {
	return store.db.Close()
}
