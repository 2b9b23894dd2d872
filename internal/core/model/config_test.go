package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 45, config.WorkDuration)
	assert.Equal(t, 15, config.RestDuration)
	assert.Equal(t, 8, config.Rounds)
	assert.Equal(t, 1, config.Sets)
	assert.Equal(t, 60, config.RestBetweenSets)
	assert.Equal(t, 10, config.PrepareTime)
	assert.True(t, config.EnableSound)
	assert.Equal(t, 3, config.CountdownBeeps)
	assert.Equal(t, 70, config.BeepVolume)
	assert.True(t, config.Valid())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  TimerConfig
		expect TimerConfig
	}{
		{
			name:   "negative durations clamp to zero",
			input:  TimerConfig{WorkDuration: -5, RestDuration: -1, RestBetweenSets: -10, PrepareTime: -3, Rounds: 1, Sets: 1},
			expect: TimerConfig{Rounds: 1, Sets: 1},
		},
		{
			name:   "zero counts clamp to one",
			input:  TimerConfig{WorkDuration: 10},
			expect: TimerConfig{WorkDuration: 10, Rounds: 1, Sets: 1},
		},
		{
			name:   "volume clamps to range",
			input:  TimerConfig{Rounds: 1, Sets: 1, BeepVolume: 250, CountdownBeeps: -2},
			expect: TimerConfig{Rounds: 1, Sets: 1, BeepVolume: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.input.Normalize())
		})
	}
}

func TestNormalizeDoesNotMutateReceiver(t *testing.T) {
	config := TimerConfig{Rounds: 0, Sets: -1}
	_ = config.Normalize()

	assert.Equal(t, 0, config.Rounds)
	assert.Equal(t, -1, config.Sets)
}

func TestGain(t *testing.T) {
	config := DefaultConfig()
	config.BeepVolume = 100
	assert.InDelta(t, 0.3, config.Gain(), 1e-9)

	config.BeepVolume = 50
	assert.InDelta(t, 0.15, config.Gain(), 1e-9)

	config.BeepVolume = 0
	assert.Zero(t, config.Gain())
}

func TestTotalSeconds(t *testing.T) {
	config := TimerConfig{WorkDuration: 20, RestDuration: 10, Rounds: 8, Sets: 1, PrepareTime: 10}
	// 10 + 8*20 + 7*10
	assert.Equal(t, 240, config.TotalSeconds())

	config.Sets = 2
	config.RestBetweenSets = 60
	// 10 + 2*(160+70) + 60
	assert.Equal(t, 530, config.TotalSeconds())
}

func TestApplyPresetStampsLastUsed(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	tabata, ok := FindPreset("tabata")
	require.True(t, ok)

	config := ApplyPreset(tabata, now)

	assert.Equal(t, 20, config.WorkDuration)
	assert.Equal(t, 10, config.RestDuration)
	assert.Equal(t, 8, config.Rounds)
	assert.Equal(t, 1, config.Sets)
	assert.Equal(t, 10, config.PrepareTime)
	assert.Equal(t, "Tabata", config.PresetName)
	assert.Equal(t, now, config.LastUsed)
	// untouched fields come from the defaults
	assert.Equal(t, 70, config.BeepVolume)
	assert.Equal(t, 60, config.RestBetweenSets)
}

func TestPresetKeepsIntentionalZeroRest(t *testing.T) {
	emom, ok := FindPreset("EMOM")
	require.True(t, ok)

	assert.Equal(t, 0, emom.Config().RestDuration)
}

func TestWithPresetKeepsPreferences(t *testing.T) {
	now := time.Now()
	base := DefaultConfig()
	base.EnableSound = false
	base.BeepVolume = 20
	base.ExerciseName = "Straddle ups"
	preset, ok := FindPreset("Strength Circuit")
	require.True(t, ok)

	updated := base.WithPreset(preset, now)

	assert.False(t, updated.EnableSound)
	assert.Equal(t, 20, updated.BeepVolume)
	assert.Equal(t, "Straddle ups", updated.ExerciseName)
	assert.Equal(t, 3, updated.Sets)
	assert.Equal(t, "Strength Circuit", updated.PresetName)
	// receiver untouched
	assert.Equal(t, 1, base.Sets)
	assert.Empty(t, base.PresetName)
}

func TestFindPresetUnknown(t *testing.T) {
	_, ok := FindPreset("couch")
	assert.False(t, ok)
	assert.Len(t, PresetNames(), len(Presets))
}
