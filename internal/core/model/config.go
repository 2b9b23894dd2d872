package model

import "time"

// Volume and gain limits.
const (
	MaxBeepVolume = 100
	PeakGain      = 0.3
)

// TimerConfig describes one interval workout. It is a value type: helpers
// return modified copies and never change the receiver.
type TimerConfig struct {
	WorkDuration    int
	RestDuration    int
	RestBetweenSets int
	PrepareTime     int

	Rounds int
	Sets   int

	EnableSound    bool
	CountdownBeeps int
	BeepVolume     int

	ShowExerciseName bool
	ExerciseName     string

	PresetName string
	LastUsed   time.Time
}

// DefaultConfig returns the documented default workout.
func DefaultConfig() TimerConfig {
	return TimerConfig{
		WorkDuration:    45,
		RestDuration:    15,
		RestBetweenSets: 60,
		PrepareTime:     10,
		Rounds:          8,
		Sets:            1,
		EnableSound:     true,
		CountdownBeeps:  3,
		BeepVolume:      70,
	}
}

// Normalize clamps every field into its domain.
func (config TimerConfig) Normalize() TimerConfig {
	config.WorkDuration = atLeast(config.WorkDuration, 0)
	config.RestDuration = atLeast(config.RestDuration, 0)
	config.RestBetweenSets = atLeast(config.RestBetweenSets, 0)
	config.PrepareTime = atLeast(config.PrepareTime, 0)
	config.Rounds = atLeast(config.Rounds, 1)
	config.Sets = atLeast(config.Sets, 1)
	config.CountdownBeeps = atLeast(config.CountdownBeeps, 0)
	config.BeepVolume = atLeast(config.BeepVolume, 0)
	if config.BeepVolume > MaxBeepVolume {
		config.BeepVolume = MaxBeepVolume
	}
	return config
}

// Valid reports whether Normalize would leave the config unchanged.
func (config TimerConfig) Valid() bool {
	return config.Normalize() == config
}

// Applied returns a normalized copy stamped with the time it was applied.
func (config TimerConfig) Applied(now time.Time) TimerConfig {
	config = config.Normalize()
	config.LastUsed = now
	return config
}

// Gain maps BeepVolume onto the synthesizer's peak gain.
func (config TimerConfig) Gain() float64 {
	volume := config.Normalize().BeepVolume
	return float64(volume) / MaxBeepVolume * PeakGain
}

// TotalSeconds is the length of the whole workout including preparation.
func (config TimerConfig) TotalSeconds() int {
	config = config.Normalize()
	perSet := config.Rounds*config.WorkDuration + (config.Rounds-1)*config.RestDuration
	return config.PrepareTime + config.Sets*perSet + (config.Sets-1)*config.RestBetweenSets
}

func atLeast(value, minimum int) int {
	if value < minimum {
		return minimum
	}
	return value
}
