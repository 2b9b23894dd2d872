package audio

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soundConfig() model.TimerConfig {
	config := model.DefaultConfig()
	config.WorkDuration = 5
	config.RestDuration = 4
	config.RestBetweenSets = 6
	config.PrepareTime = 5
	config.Rounds = 2
	config.Sets = 2
	config.CountdownBeeps = 3
	config.BeepVolume = 100
	return config
}

func tickEvent(phase interval.Phase, remaining int) session.Event {
	return session.Event{
		Type:       session.EventTick,
		State:      interval.State{Phase: phase, TimeRemaining: remaining, IsRunning: true, CurrentSet: 1},
		Previous:   phase,
		WasRunning: true,
	}
}

func phaseEvent(from, to interval.Phase, wasRunning bool) session.Event {
	running := wasRunning && to != interval.PhaseFinished
	return session.Event{
		Type:       session.EventPhaseChange,
		State:      interval.State{Phase: to, TimeRemaining: 5, IsRunning: running, CurrentSet: 1},
		Previous:   from,
		WasRunning: wasRunning,
	}
}

// simulate runs a whole session and returns every event it emitted.
func simulate(t *testing.T, config model.TimerConfig) []session.Event {
	t.Helper()
	s := session.New(config, session.Options{TickInterval: time.Hour, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	defer s.Close()
	events := s.Subscribe(1024)

	s.Start()
	s.Advance(config.TotalSeconds() + 5)
	require.True(t, s.State().Finished())

	var out []session.Event
	for {
		select {
		case event := <-events:
			out = append(out, event)
		default:
			return out
		}
	}
}

func TestPlanSilentWhenSoundDisabled(t *testing.T) {
	config := soundConfig()
	config.EnableSound = false

	for _, event := range simulate(t, config) {
		assert.Empty(t, Plan(event, config), "event %s", event.Type)
	}
}

func TestPlanCountdown(t *testing.T) {
	config := soundConfig()

	assert.Empty(t, Plan(tickEvent(interval.PhaseWork, 4), config))

	three := Plan(tickEvent(interval.PhaseWork, 3), config)
	require.Len(t, three, 1)
	assert.Equal(t, FrequencyCountdown, three[0].Frequency)

	last := Plan(tickEvent(interval.PhaseWork, 1), config)
	require.Len(t, last, 1)
	assert.Equal(t, FrequencyCountdownLast, last[0].Frequency)
	assert.Greater(t, last[0].Frequency, three[0].Frequency)
	assert.Greater(t, last[0].Duration, three[0].Duration)
	assert.InDelta(t, 0.3, last[0].Gain, 1e-9)
}

func TestPlanCountdownDisabledAndPaused(t *testing.T) {
	config := soundConfig()
	config.CountdownBeeps = 0
	assert.Empty(t, Plan(tickEvent(interval.PhaseWork, 1), config))

	config = soundConfig()
	paused := tickEvent(interval.PhaseWork, 2)
	paused.State.IsPaused = true
	assert.Empty(t, Plan(paused, config))
}

func TestPlanPhaseTonesAreDistinct(t *testing.T) {
	config := soundConfig()

	work := Plan(phaseEvent(interval.PhaseRest, interval.PhaseWork, true), config)
	rest := Plan(phaseEvent(interval.PhaseWork, interval.PhaseRest, true), config)
	setRest := Plan(phaseEvent(interval.PhaseWork, interval.PhaseSetRest, true), config)
	require.Len(t, work, 1)
	require.Len(t, rest, 1)
	require.Len(t, setRest, 1)

	assert.Greater(t, work[0].Frequency, rest[0].Frequency)
	assert.NotEqual(t, setRest[0].Frequency, work[0].Frequency)
	assert.NotEqual(t, setRest[0].Frequency, rest[0].Frequency)
}

func TestPlanFinishedTripleBeep(t *testing.T) {
	tones := Plan(phaseEvent(interval.PhaseWork, interval.PhaseFinished, true), soundConfig())

	require.Len(t, tones, 3)
	for i, tone := range tones {
		assert.Equal(t, FrequencyFinished, tone.Frequency)
		assert.Equal(t, time.Duration(i)*FinishedGap, tone.Delay)
	}
}

func TestPlanIgnoresPhaseChangesOutsideRunningSession(t *testing.T) {
	assert.Empty(t, Plan(phaseEvent(interval.PhasePrepare, interval.PhaseWork, false), soundConfig()))

	status := session.Event{Type: session.EventStatus, State: interval.State{Phase: interval.PhasePrepare}, Previous: interval.PhaseWork, WasRunning: true}
	assert.Empty(t, Plan(status, soundConfig()), "reset does not beep")
}

func TestPlanWholeSession(t *testing.T) {
	config := soundConfig()

	counts := map[float64]int{}
	for _, event := range simulate(t, config) {
		for _, tone := range Plan(event, config) {
			counts[tone.Frequency]++
		}
	}

	// 4 work phases, 2 rests, 1 set rest, 3 finishing beeps
	assert.Equal(t, 4, counts[FrequencyWork])
	assert.Equal(t, 2, counts[FrequencyRest])
	assert.Equal(t, 1, counts[FrequencySetRest])
	assert.Equal(t, 3, counts[FrequencyFinished])
	// every segment of 4s or longer counts 3, 2, 1; the last work phase
	// ends in finished so all 8 segments get their final beep
	assert.Equal(t, 8, counts[FrequencyCountdownLast])
	assert.Equal(t, 16, counts[FrequencyCountdown])
}

func TestPlanCountsFirstSecondOfShortPhase(t *testing.T) {
	config := soundConfig()

	event := phaseEvent(interval.PhaseWork, interval.PhaseRest, true)
	event.State.TimeRemaining = 2
	tones := Plan(event, config)

	require.Len(t, tones, 2)
	assert.Equal(t, FrequencyRest, tones[0].Frequency)
	assert.Equal(t, FrequencyCountdown, tones[1].Frequency)
	assert.Equal(t, tones[0].Duration, tones[1].Delay, "the countdown beep follows the phase tone")
}

func TestPlanCountsFirstSecondOnStart(t *testing.T) {
	config := soundConfig()
	config.PrepareTime = 2

	start := session.Event{
		Type:  session.EventStatus,
		State: interval.State{Phase: interval.PhasePrepare, TimeRemaining: 2, IsRunning: true, CurrentSet: 1},
	}
	tones := Plan(start, config)
	require.Len(t, tones, 1)
	assert.Equal(t, FrequencyCountdown, tones[0].Frequency)

	resume := start
	resume.WasRunning = true
	assert.Empty(t, Plan(resume, config), "resume does not repeat the current second")
}

func TestPlanSkipsCatchUpTicks(t *testing.T) {
	config := soundConfig()

	late := tickEvent(interval.PhaseWork, 2)
	late.CatchUp = true
	assert.Empty(t, Plan(late, config))

	entered := phaseEvent(interval.PhaseWork, interval.PhaseRest, true)
	entered.State.TimeRemaining = 2
	entered.CatchUp = true
	tones := Plan(entered, config)
	require.Len(t, tones, 1, "the phase tone still plays")
	assert.Equal(t, FrequencyRest, tones[0].Frequency)
}

func TestPlanShortPhasesCountEverySecond(t *testing.T) {
	config := soundConfig()
	config.PrepareTime = 2
	config.RestDuration = 2
	config.Sets = 1

	var countdown, last int
	for _, event := range simulate(t, config) {
		for _, tone := range Plan(event, config) {
			switch tone.Frequency {
			case FrequencyCountdownLast:
				last++
			case FrequencyCountdown:
				countdown++
			}
		}
	}
	// prepare 2, work 5, rest 2, work 5: every segment beeps at 3 or fewer
	// seconds left, including the second a short segment starts on
	assert.Equal(t, 4, last)
	assert.Equal(t, 1+2+1+2, countdown)
}
