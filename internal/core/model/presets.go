package model

import (
	"strings"
	"time"
)

// Preset is a named partial override of DefaultConfig. Zero-valued fields
// keep the default.
type Preset struct {
	Name            string
	Description     string
	WorkDuration    int
	RestDuration    int
	RestBetweenSets int
	PrepareTime     int
	Rounds          int
	Sets            int
	// NoRest marks presets whose rest is intentionally zero.
	NoRest bool
}

// Presets lists the built-in workout templates.
var Presets = []Preset{
	{
		Name:         "Tabata",
		Description:  "20s on, 10s off, 8 rounds",
		WorkDuration: 20,
		RestDuration: 10,
		Rounds:       8,
		Sets:         1,
		PrepareTime:  10,
	},
	{
		Name:         "HIIT Classic",
		Description:  "30s on, 30s off, 10 rounds",
		WorkDuration: 30,
		RestDuration: 30,
		Rounds:       10,
		Sets:         1,
	},
	{
		Name:         "EMOM",
		Description:  "Every minute on the minute, 10 minutes",
		WorkDuration: 60,
		NoRest:       true,
		Rounds:       10,
		Sets:         1,
	},
	{
		Name:            "Aerial Conditioning",
		Description:     "40s on, 20s off, 6 rounds x 3 sets",
		WorkDuration:    40,
		RestDuration:    20,
		Rounds:          6,
		Sets:            3,
		RestBetweenSets: 90,
	},
	{
		Name:            "Strength Circuit",
		Description:     "45s on, 15s off, 5 rounds x 3 sets",
		WorkDuration:    45,
		RestDuration:    15,
		Rounds:          5,
		Sets:            3,
		RestBetweenSets: 60,
	},
}

// PresetNames returns preset names in display order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for _, preset := range Presets {
		names = append(names, preset.Name)
	}
	return names
}

// FindPreset looks a preset up by case-insensitive name.
func FindPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, preset := range Presets {
		if strings.EqualFold(preset.Name, name) {
			return preset, true
		}
	}
	return Preset{}, false
}

// Config merges the preset onto DefaultConfig.
func (preset Preset) Config() TimerConfig {
	config := DefaultConfig()
	if preset.WorkDuration > 0 {
		config.WorkDuration = preset.WorkDuration
	}
	if preset.RestDuration > 0 || preset.NoRest {
		config.RestDuration = preset.RestDuration
	}
	if preset.RestBetweenSets > 0 {
		config.RestBetweenSets = preset.RestBetweenSets
	}
	if preset.PrepareTime > 0 {
		config.PrepareTime = preset.PrepareTime
	}
	if preset.Rounds > 0 {
		config.Rounds = preset.Rounds
	}
	if preset.Sets > 0 {
		config.Sets = preset.Sets
	}
	config.PresetName = preset.Name
	return config.Normalize()
}

// ApplyPreset returns a brand-new config built from the preset and stamped
// with now.
func ApplyPreset(preset Preset, now time.Time) TimerConfig {
	return preset.Config().Applied(now)
}

// WithPreset keeps the receiver's sound and display preferences and takes
// the timing fields from the preset.
func (config TimerConfig) WithPreset(preset Preset, now time.Time) TimerConfig {
	timing := preset.Config()
	config.WorkDuration = timing.WorkDuration
	config.RestDuration = timing.RestDuration
	config.RestBetweenSets = timing.RestBetweenSets
	config.PrepareTime = timing.PrepareTime
	config.Rounds = timing.Rounds
	config.Sets = timing.Sets
	config.PresetName = timing.PresetName
	return config.Applied(now)
}
