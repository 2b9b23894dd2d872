// Package history records every workout that finishes or is abandoned
// after it was started.
package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
	"aerialtimer/internal/storage"
	"github.com/google/uuid"
)

// Sink persists recorded workouts.
type Sink interface {
	Record(ctx context.Context, workout storage.Workout) (uuid.UUID, error)
}

// ConfigSource supplies the configuration the session runs with.
type ConfigSource interface {
	Config() model.TimerConfig
}

// Recorder watches session events and writes one Workout per run.
type Recorder struct {
	sink   Sink
	config ConfigSource
	log    *slog.Logger
	now    func() time.Time

	running   bool
	startedAt time.Time
	snapshot  model.TimerConfig
	last      interval.State

	mu       sync.Mutex
	watchers []chan storage.Workout
	stopped  bool
}

// NewRecorder creates a Recorder.
func NewRecorder(sink Sink, config ConfigSource, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		sink:   sink,
		config: config,
		log:    logger.With("component", "history"),
		now:    time.Now,
	}
}

// Subscribe returns a channel that receives every workout once it has been
// stored. It is closed when Run returns. Workouts are dropped for a full
// buffer.
func (recorder *Recorder) Subscribe(buffer int) <-chan storage.Workout {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan storage.Workout, buffer)
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.stopped {
		close(ch)
		return ch
	}
	recorder.watchers = append(recorder.watchers, ch)
	return ch
}

// Run consumes events until the channel closes or ctx is cancelled. A run
// still in progress when the session closes is recorded as abandoned.
func (recorder *Recorder) Run(ctx context.Context, events <-chan session.Event) {
	defer recorder.stop()
	for {
		select {
		case <-ctx.Done():
			recorder.abandon(context.WithoutCancel(ctx), recorder.now())
			return
		case event, ok := <-events:
			if !ok {
				recorder.abandon(context.WithoutCancel(ctx), recorder.now())
				return
			}
			recorder.Handle(ctx, event)
		}
	}
}

// Handle folds one event into the current run.
func (recorder *Recorder) Handle(ctx context.Context, event session.Event) {
	at := event.At
	if at.IsZero() {
		at = recorder.now()
	}
	state := event.State

	switch {
	case !recorder.running && state.IsRunning:
		recorder.running = true
		recorder.startedAt = at
		recorder.snapshot = recorder.config.Config()
	case !recorder.running:
		return
	case state.Finished():
		recorder.last = state
		recorder.finish(ctx, at, true)
		return
	case !state.IsRunning && !state.IsPaused:
		// Back at a fresh prepare phase: the run was reset.
		recorder.finish(ctx, at, false)
		return
	}
	recorder.last = state
}

func (recorder *Recorder) abandon(ctx context.Context, at time.Time) {
	if recorder.running {
		recorder.finish(ctx, at, false)
	}
}

func (recorder *Recorder) finish(ctx context.Context, at time.Time, completed bool) {
	workout := storage.Workout{
		PresetName:     recorder.snapshot.PresetName,
		Config:         recorder.snapshot,
		StartedAt:      recorder.startedAt,
		EndedAt:        at,
		Completed:      completed,
		ElapsedSeconds: interval.Elapsed(recorder.last, recorder.snapshot),
	}
	recorder.running = false
	recorder.last = interval.State{}

	id, err := recorder.sink.Record(ctx, workout)
	if err != nil {
		recorder.log.Warn("record workout", "error", err)
		return
	}
	workout.ID = id
	recorder.notify(workout)
	recorder.log.Info("workout recorded",
		"id", id,
		"preset", workout.PresetName,
		"completed", completed,
		"elapsed", workout.ElapsedSeconds,
	)
}

func (recorder *Recorder) notify(workout storage.Workout) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	for _, ch := range recorder.watchers {
		select {
		case ch <- workout:
		default:
		}
	}
}

func (recorder *Recorder) stop() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.stopped {
		return
	}
	recorder.stopped = true
	for _, ch := range recorder.watchers {
		close(ch)
	}
	recorder.watchers = nil
}
