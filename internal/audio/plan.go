// Package audio turns session events into short synthesized tones.
package audio

import (
	"time"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
)

// Tone frequencies in Hz. They are presentation defaults, not a contract.
const (
	FrequencyCountdown     = 800.0
	FrequencyCountdownLast = 1000.0
	FrequencyWork          = 1200.0
	FrequencyRest          = 600.0
	FrequencySetRest       = 700.0
	FrequencyPrepare       = 800.0
	FrequencyFinished      = 1500.0
)

const (
	countdownLength     = 100 * time.Millisecond
	countdownLastLength = 250 * time.Millisecond
	phaseLength         = 300 * time.Millisecond
	setRestLength       = 400 * time.Millisecond
	finishedLength      = 150 * time.Millisecond
	// FinishedGap is the delay between the starts of the finishing beeps.
	FinishedGap = 200 * time.Millisecond
)

// Tone is one beep. Delay is measured from the moment the event is handled.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Gain      float64
	Delay     time.Duration
}

// Plan returns the tones an event should produce under config. It never
// returns tones when sound is disabled.
func Plan(event session.Event, config model.TimerConfig) []Tone {
	config = config.Normalize()
	if !config.EnableSound {
		return nil
	}
	gain := config.Gain()

	switch event.Type {
	case session.EventPhaseChange:
		if !event.PhaseChanged() || !(event.WasRunning || event.State.IsRunning) {
			return nil
		}
		tones := phaseTones(event.State.Phase, gain)
		if event.CatchUp || len(tones) == 0 {
			return tones
		}
		// A phase that starts inside the countdown window counts its first
		// second right after the phase tone.
		return append(tones, countdownTones(event.State, config, gain, tones[0].Duration)...)
	case session.EventTick:
		if event.CatchUp {
			return nil
		}
		return countdownTones(event.State, config, gain, 0)
	case session.EventStatus:
		// Only a fresh start counts; a resume repeats an already counted second.
		if event.WasRunning {
			return nil
		}
		return countdownTones(event.State, config, gain, 0)
	default:
		return nil
	}
}

func countdownTones(state interval.State, config model.TimerConfig, gain float64, delay time.Duration) []Tone {
	if !state.Active() {
		return nil
	}
	remaining := state.TimeRemaining
	if remaining <= 0 || remaining > config.CountdownBeeps {
		return nil
	}
	if remaining == 1 {
		return []Tone{{Frequency: FrequencyCountdownLast, Duration: countdownLastLength, Gain: gain, Delay: delay}}
	}
	return []Tone{{Frequency: FrequencyCountdown, Duration: countdownLength, Gain: gain, Delay: delay}}
}

func phaseTones(phase interval.Phase, gain float64) []Tone {
	switch phase {
	case interval.PhaseWork:
		return []Tone{{Frequency: FrequencyWork, Duration: phaseLength, Gain: gain}}
	case interval.PhaseRest:
		return []Tone{{Frequency: FrequencyRest, Duration: phaseLength, Gain: gain}}
	case interval.PhaseSetRest:
		return []Tone{{Frequency: FrequencySetRest, Duration: setRestLength, Gain: gain}}
	case interval.PhasePrepare:
		return []Tone{{Frequency: FrequencyPrepare, Duration: phaseLength, Gain: gain}}
	case interval.PhaseFinished:
		tones := make([]Tone, 3)
		for i := range tones {
			tones[i] = Tone{
				Frequency: FrequencyFinished,
				Duration:  finishedLength,
				Gain:      gain,
				Delay:     time.Duration(i) * FinishedGap,
			}
		}
		return tones
	default:
		return nil
	}
}
