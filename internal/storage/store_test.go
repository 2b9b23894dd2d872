package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aerialtimer/internal/core/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customConfig() model.TimerConfig {
	preset, ok := model.FindPreset("Aerial Conditioning")
	if !ok {
		panic("missing preset")
	}
	config := model.ApplyPreset(preset, time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
	config.EnableSound = false
	config.CountdownBeeps = 5
	config.BeepVolume = 40
	config.ShowExerciseName = true
	config.ExerciseName = "Silks climbs"
	return config
}

func openStores(t *testing.T) map[string]ConfigStore {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := OpenSQLiteStore(context.Background(), dir, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]ConfigStore{
		"yaml":   NewYAMLStore(filepath.Join(dir, "nested", TimerFileName)),
		"sqlite": sqlite,
	}
}

func TestStoresRoundTrip(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := customConfig()

			require.NoError(t, store.Save(ctx, want))
			got, err := store.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, want, got)
			assert.True(t, want.LastUsed.Equal(got.LastUsed))
		})
	}
}

func TestStoresMissingRecordYieldsDefaults(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, model.DefaultConfig(), got)
		})
	}
}

func TestStoresSaveNormalizes(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			config := model.DefaultConfig()
			config.Rounds = 0
			config.BeepVolume = 250

			require.NoError(t, store.Save(ctx, config))
			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, got.Rounds)
			assert.Equal(t, model.MaxBeepVolume, got.BeepVolume)
		})
	}
}

func TestYAMLStoreClampsAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), TimerFileName)
	raw := "workDuration: -5\nrounds: 0\nbeepVolume: 300\nexerciseName: Hoop\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	got, err := NewYAMLStore(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, got.WorkDuration)
	assert.Equal(t, 1, got.Rounds)
	assert.Equal(t, model.MaxBeepVolume, got.BeepVolume)
	assert.Equal(t, "Hoop", got.ExerciseName)
	assert.Equal(t, model.DefaultConfig().RestDuration, got.RestDuration, "absent keys keep defaults")
}

func TestYAMLStoreUsesCamelCaseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), TimerFileName)
	require.NoError(t, NewYAMLStore(path).Save(context.Background(), customConfig()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{"workDuration:", "restBetweenSets:", "countdownBeeps:", "presetName:", "lastUsed:"} {
		assert.Contains(t, string(raw), key)
	}
}

func TestYAMLStoreRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), TimerFileName)
	require.NoError(t, os.WriteFile(path, []byte("rounds: [unclosed"), 0o644))

	got, err := NewYAMLStore(path).Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, model.DefaultConfig(), got)
}

func TestSQLiteStoreProfilesAreIndependent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	coach, err := OpenSQLiteStore(ctx, dir, "coach")
	require.NoError(t, err)
	defer coach.Close()
	require.NoError(t, coach.Save(ctx, customConfig()))

	student, err := OpenSQLiteStore(ctx, dir, "student")
	require.NoError(t, err)
	defer student.Close()

	got, err := student.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), got)
	assert.Equal(t, "student", student.Profile())
}

func TestSQLiteStoreHistory(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(ctx, t.TempDir(), "")
	require.NoError(t, err)
	defer store.Close()

	start := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	first, err := store.Record(ctx, Workout{
		PresetName:     "Tabata",
		Config:         customConfig(),
		StartedAt:      start,
		EndedAt:        start.Add(4 * time.Minute),
		Completed:      true,
		ElapsedSeconds: 240,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first)

	second, err := store.Record(ctx, Workout{
		PresetName:     "EMOM",
		Config:         model.DefaultConfig(),
		StartedAt:      start.Add(time.Hour),
		EndedAt:        start.Add(time.Hour + 90*time.Second),
		ElapsedSeconds: 90,
	})
	require.NoError(t, err)

	workouts, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, workouts, 2)

	assert.Equal(t, second, workouts[0].ID)
	assert.False(t, workouts[0].Completed)
	assert.Equal(t, first, workouts[1].ID)
	assert.True(t, workouts[1].Completed)
	assert.Equal(t, 240, workouts[1].ElapsedSeconds)
	assert.Equal(t, customConfig(), workouts[1].Config)
	assert.True(t, start.Equal(workouts[1].StartedAt))

	limited, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	stores, err := Open(ctx, BackendSQLite, t.TempDir(), "")
	require.NoError(t, err)
	assert.Same(t, stores.History, stores.Config)
	require.NoError(t, stores.Close())

	stores, err = Open(ctx, BackendYAML, t.TempDir(), "")
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, stores.Config)
	require.NoError(t, stores.Close())

	_, err = Open(ctx, Backend("postgres"), t.TempDir(), "")
	assert.Error(t, err)
}
