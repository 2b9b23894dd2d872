package preferences

import (
	"strconv"
	"strings"

	"aerialtimer/internal/core/model"
)

// Fields holds the raw text and toggles of the preferences form.
type Fields struct {
	Work            string
	Rest            string
	RestBetweenSets string
	Prepare         string
	Rounds          string
	Sets            string
	CountdownBeeps  string

	EnableSound      bool
	BeepVolume       float64
	ShowExerciseName bool
	ExerciseName     string
}

// FieldsFrom fills the form from config.
func FieldsFrom(config model.TimerConfig) Fields {
	return Fields{
		Work:             strconv.Itoa(config.WorkDuration),
		Rest:             strconv.Itoa(config.RestDuration),
		RestBetweenSets:  strconv.Itoa(config.RestBetweenSets),
		Prepare:          strconv.Itoa(config.PrepareTime),
		Rounds:           strconv.Itoa(config.Rounds),
		Sets:             strconv.Itoa(config.Sets),
		CountdownBeeps:   strconv.Itoa(config.CountdownBeeps),
		EnableSound:      config.EnableSound,
		BeepVolume:       float64(config.BeepVolume),
		ShowExerciseName: config.ShowExerciseName,
		ExerciseName:     config.ExerciseName,
	}
}

// Apply overlays the form on base. Unparseable numbers keep the base
// value; the result is normalized. Editing any timing field drops the
// preset name.
func (fields Fields) Apply(base model.TimerConfig) model.TimerConfig {
	config := base
	config.WorkDuration = parseInt(fields.Work, base.WorkDuration)
	config.RestDuration = parseInt(fields.Rest, base.RestDuration)
	config.RestBetweenSets = parseInt(fields.RestBetweenSets, base.RestBetweenSets)
	config.PrepareTime = parseInt(fields.Prepare, base.PrepareTime)
	config.Rounds = parseInt(fields.Rounds, base.Rounds)
	config.Sets = parseInt(fields.Sets, base.Sets)
	config.CountdownBeeps = parseInt(fields.CountdownBeeps, base.CountdownBeeps)
	config.EnableSound = fields.EnableSound
	config.BeepVolume = int(fields.BeepVolume + 0.5)
	config.ShowExerciseName = fields.ShowExerciseName
	config.ExerciseName = strings.TrimSpace(fields.ExerciseName)

	if config.WorkDuration != base.WorkDuration ||
		config.RestDuration != base.RestDuration ||
		config.RestBetweenSets != base.RestBetweenSets ||
		config.PrepareTime != base.PrepareTime ||
		config.Rounds != base.Rounds ||
		config.Sets != base.Sets {
		config.PresetName = ""
	}
	return config.Normalize()
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
