// Package interval is the deterministic interval-timer state machine. It has
// no clock and no I/O: every function maps a State and a TimerConfig to the
// next State.
package interval

import (
	"fmt"

	"aerialtimer/internal/core/model"
)

// Phase is one stage of a workout.
type Phase string

const (
	PhasePrepare  Phase = "prepare"
	PhaseWork     Phase = "work"
	PhaseRest     Phase = "rest"
	PhaseSetRest  Phase = "set-rest"
	PhaseFinished Phase = "finished"
)

// State is the mutable part of a running session.
type State struct {
	Phase         Phase
	CurrentRound  int
	CurrentSet    int
	TimeRemaining int
	IsRunning     bool
	IsPaused      bool
}

// Active reports whether the tick driver should be counting down.
func (state State) Active() bool {
	return state.IsRunning && !state.IsPaused
}

// Finished reports whether the session reached its terminal phase.
func (state State) Finished() bool {
	return state.Phase == PhaseFinished
}

func (state State) String() string {
	return fmt.Sprintf("%s round=%d set=%d remaining=%d running=%t paused=%t",
		state.Phase, state.CurrentRound, state.CurrentSet, state.TimeRemaining, state.IsRunning, state.IsPaused)
}

// NewState returns the initial state for config.
func NewState(config model.TimerConfig) State {
	config = config.Normalize()
	return State{
		Phase:         PhasePrepare,
		CurrentRound:  0,
		CurrentSet:    1,
		TimeRemaining: config.PrepareTime,
	}
}

// Transition applies one "time's up" step of the phase table. Phases whose
// configured duration is zero are passed through so the countdown never
// sits at zero.
func Transition(state State, config model.TimerConfig) State {
	config = config.Normalize()
	if state.Finished() {
		return state
	}
	state = step(state, config)
	for !state.Finished() && state.TimeRemaining == 0 {
		state = step(state, config)
	}
	return state
}

func step(state State, config model.TimerConfig) State {
	switch state.Phase {
	case PhasePrepare:
		state.Phase = PhaseWork
		state.CurrentRound = 1
		state.TimeRemaining = config.WorkDuration
	case PhaseWork:
		switch {
		case state.CurrentRound < config.Rounds:
			state.Phase = PhaseRest
			state.CurrentRound++
			state.TimeRemaining = config.RestDuration
		case state.CurrentSet < config.Sets:
			state.Phase = PhaseSetRest
			state.CurrentRound = 1
			state.CurrentSet++
			state.TimeRemaining = config.RestBetweenSets
		default:
			state.Phase = PhaseFinished
			state.IsRunning = false
			state.IsPaused = false
			state.TimeRemaining = 0
		}
	case PhaseRest, PhaseSetRest:
		state.Phase = PhaseWork
		state.TimeRemaining = config.WorkDuration
	default:
		// Unknown phases restart preparation rather than wedging the session.
		return NewState(config)
	}
	return state
}

// Tick advances one second. The last displayed second is 1: a tick that
// would reach 0 transitions instead.
func Tick(state State, config model.TimerConfig) State {
	if !state.Active() || state.Finished() {
		return state
	}
	if state.TimeRemaining > 1 {
		state.TimeRemaining--
		return state
	}
	return Transition(state, config)
}

// Advance applies n ticks and stops early once the session is no longer
// active.
func Advance(state State, config model.TimerConfig, n int) State {
	for i := 0; i < n && state.Active(); i++ {
		state = Tick(state, config)
	}
	return state
}

// Start marks the session running. A finished session stays finished, and a
// zero-length preparation is passed through immediately.
func Start(state State, config model.TimerConfig) State {
	if state.Finished() {
		return state
	}
	state.IsRunning = true
	state.IsPaused = false
	if state.TimeRemaining == 0 {
		return Transition(state, config)
	}
	return state
}

// Pause suspends ticking while the session stays running.
func Pause(state State) State {
	if !state.IsRunning {
		return state
	}
	state.IsPaused = true
	return state
}

// Resume continues a paused session from the exact remaining time.
func Resume(state State) State {
	if !state.IsRunning || !state.IsPaused {
		return state
	}
	state.IsPaused = false
	return state
}

// Reset returns the initial state for config.
func Reset(config model.TimerConfig) State {
	return NewState(config)
}

// Skip forces the next transition regardless of the remaining time.
func Skip(state State, config model.TimerConfig) State {
	if state.Finished() {
		return state
	}
	return Transition(state, config)
}
