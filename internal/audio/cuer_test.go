package audio

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type played struct {
	frequency float64
	duration  time.Duration
	gain      float64
}

type fakeSynth struct {
	mu    sync.Mutex
	calls []played
	err   error
	panic bool
}

func (synth *fakeSynth) Tone(frequency float64, duration time.Duration, gain float64) error {
	synth.mu.Lock()
	synth.calls = append(synth.calls, played{frequency: frequency, duration: duration, gain: gain})
	fail, boom := synth.err, synth.panic
	synth.mu.Unlock()
	if boom {
		panic("device gone")
	}
	return fail
}

func (synth *fakeSynth) count() int {
	synth.mu.Lock()
	defer synth.mu.Unlock()
	return len(synth.calls)
}

func (synth *fakeSynth) frequencies() []float64 {
	synth.mu.Lock()
	defer synth.mu.Unlock()
	out := make([]float64, 0, len(synth.calls))
	for _, call := range synth.calls {
		out = append(out, call.frequency)
	}
	return out
}

type staticConfig struct{ config model.TimerConfig }

func (source staticConfig) Config() model.TimerConfig { return source.config }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCuerSilentSessionMakesNoCalls(t *testing.T) {
	config := soundConfig()
	config.EnableSound = false
	synth := &fakeSynth{}
	cuer := NewCuer(synth, staticConfig{config}, quietLogger())

	s := session.New(config, session.Options{TickInterval: time.Hour, Logger: quietLogger()})
	events := s.Subscribe(1024)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		cuer.Run(ctx, events)
		close(done)
	}()

	s.Start()
	s.Pause()
	s.Resume()
	s.Advance(config.TotalSeconds())
	s.Reset()
	s.Start()
	s.Skip()
	s.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cuer did not stop after the session closed")
	}
	assert.Zero(t, synth.count())
}

func TestCuerPlaysPhaseTone(t *testing.T) {
	synth := &fakeSynth{}
	cuer := NewCuer(synth, staticConfig{soundConfig()}, quietLogger())

	cuer.Handle(phaseEvent(interval.PhaseWork, interval.PhaseRest, true))

	assert.Eventually(t, func() bool { return synth.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []float64{FrequencyRest}, synth.frequencies())
}

func TestCuerSchedulesFinishingBeeps(t *testing.T) {
	synth := &fakeSynth{}
	cuer := NewCuer(synth, staticConfig{soundConfig()}, quietLogger())

	var mu sync.Mutex
	var delays []time.Duration
	cuer.after = func(delay time.Duration, play func()) {
		mu.Lock()
		delays = append(delays, delay)
		mu.Unlock()
		play()
	}

	cuer.Handle(phaseEvent(interval.PhaseWork, interval.PhaseFinished, true))

	assert.Eventually(t, func() bool { return synth.count() == 3 }, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []time.Duration{FinishedGap, 2 * FinishedGap}, delays)
}

func TestCuerFollowsConfigSource(t *testing.T) {
	synth := &fakeSynth{}
	s := session.New(soundConfig(), session.Options{TickInterval: time.Hour, Logger: quietLogger()})
	defer s.Close()
	cuer := NewCuer(synth, s, quietLogger())

	muted := soundConfig()
	muted.EnableSound = false
	require.NoError(t, s.UpdateConfig(muted))

	cuer.Handle(phaseEvent(interval.PhaseWork, interval.PhaseRest, true))
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, synth.count())
}

func TestCuerSurvivesSynthFailures(t *testing.T) {
	failing := &fakeSynth{err: errors.New("no device")}
	cuer := NewCuer(failing, staticConfig{soundConfig()}, quietLogger())
	assert.NotPanics(t, func() { cuer.play(Tone{Frequency: FrequencyWork, Duration: phaseLength, Gain: 0.2}) })
	assert.Equal(t, 1, failing.count())

	panicking := &fakeSynth{panic: true}
	cuer = NewCuer(panicking, staticConfig{soundConfig()}, quietLogger())
	assert.NotPanics(t, func() { cuer.play(Tone{Frequency: FrequencyWork, Duration: phaseLength, Gain: 0.2}) })
	assert.Equal(t, 1, panicking.count())
}

func TestCuerRunStopsOnCancel(t *testing.T) {
	cuer := NewCuer(&fakeSynth{}, staticConfig{soundConfig()}, quietLogger())
	events := make(chan session.Event)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		cuer.Run(ctx, events)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
