// Package storage persists the timer configuration and the workout
// history on the local device.
package storage

import (
	"context"
	"time"

	"aerialtimer/internal/core/model"
)

// ConfigStore loads and saves the last used timer configuration.
//
// Load never fails on out-of-range values: they are clamped. A missing
// record yields model.DefaultConfig.
type ConfigStore interface {
	Load(ctx context.Context) (model.TimerConfig, error)
	Save(ctx context.Context, config model.TimerConfig) error
	Close() error
}

// configRecord is the serialized form of model.TimerConfig, shared by the
// YAML file and the SQLite value column.
type configRecord struct {
	WorkDuration     int       `json:"workDuration" yaml:"workDuration"`
	RestDuration     int       `json:"restDuration" yaml:"restDuration"`
	RestBetweenSets  int       `json:"restBetweenSets" yaml:"restBetweenSets"`
	PrepareTime      int       `json:"prepareTime" yaml:"prepareTime"`
	Rounds           int       `json:"rounds" yaml:"rounds"`
	Sets             int       `json:"sets" yaml:"sets"`
	EnableSound      bool      `json:"enableSound" yaml:"enableSound"`
	CountdownBeeps   int       `json:"countdownBeeps" yaml:"countdownBeeps"`
	BeepVolume       int       `json:"beepVolume" yaml:"beepVolume"`
	ShowExerciseName bool      `json:"showExerciseName" yaml:"showExerciseName"`
	ExerciseName     string    `json:"exerciseName" yaml:"exerciseName"`
	PresetName       string    `json:"presetName,omitempty" yaml:"presetName,omitempty"`
	LastUsed         time.Time `json:"lastUsed" yaml:"lastUsed"`
}

func newConfigRecord(config model.TimerConfig) configRecord {
	return configRecord{
		WorkDuration:     config.WorkDuration,
		RestDuration:     config.RestDuration,
		RestBetweenSets:  config.RestBetweenSets,
		PrepareTime:      config.PrepareTime,
		Rounds:           config.Rounds,
		Sets:             config.Sets,
		EnableSound:      config.EnableSound,
		CountdownBeeps:   config.CountdownBeeps,
		BeepVolume:       config.BeepVolume,
		ShowExerciseName: config.ShowExerciseName,
		ExerciseName:     config.ExerciseName,
		PresetName:       config.PresetName,
		LastUsed:         config.LastUsed,
	}
}

// defaultRecord seeds decoding so fields absent from stored data keep
// their default values.
func defaultRecord() configRecord {
	return newConfigRecord(model.DefaultConfig())
}

func (record configRecord) config() model.TimerConfig {
	return model.TimerConfig{
		WorkDuration:     record.WorkDuration,
		RestDuration:     record.RestDuration,
		RestBetweenSets:  record.RestBetweenSets,
		PrepareTime:      record.PrepareTime,
		Rounds:           record.Rounds,
		Sets:             record.Sets,
		EnableSound:      record.EnableSound,
		CountdownBeeps:   record.CountdownBeeps,
		BeepVolume:       record.BeepVolume,
		ShowExerciseName: record.ShowExerciseName,
		ExerciseName:     record.ExerciseName,
		PresetName:       record.PresetName,
		LastUsed:         record.LastUsed,
	}.Normalize()
}
