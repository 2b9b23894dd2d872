package session

import (
	"time"

	"aerialtimer/internal/core/interval"
)

// EventType defines the type of session event.
type EventType string

const (
	EventPhaseChange   EventType = "phase_change"
	EventTick          EventType = "tick"
	EventStatus        EventType = "status"
	EventConfig        EventType = "config"
	EventWakeLockError EventType = "wake_lock_error"
)

// Event is a session update for observers. State is the snapshot after the
// change; Previous is the phase before it.
type Event struct {
	Type     EventType
	State    interval.State
	Previous interval.Phase
	// WasRunning reports whether the session was running before the change.
	WasRunning bool
	// CatchUp marks ticks replayed in a burst after the driver fell behind;
	// only the last tick of a burst leaves it unset.
	CatchUp    bool
	Message    string
	At         time.Time
}

// PhaseChanged reports whether the event moved the session into a new phase.
func (event Event) PhaseChanged() bool {
	return event.Type == EventPhaseChange && event.Previous != event.State.Phase
}
