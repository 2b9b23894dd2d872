package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
)

// Synth plays one tone. Implementations may block for the tone's length.
type Synth interface {
	Tone(frequency float64, duration time.Duration, gain float64) error
}

// ConfigSource supplies the configuration in effect when an event arrives.
type ConfigSource interface {
	Config() model.TimerConfig
}

// Cuer reacts to session events with tones. It never touches the session
// state, and tone failures are logged and dropped.
type Cuer struct {
	synth  Synth
	config ConfigSource
	log    *slog.Logger
	after  func(time.Duration, func())
}

// NewCuer creates a Cuer.
func NewCuer(synth Synth, config ConfigSource, logger *slog.Logger) *Cuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cuer{
		synth:  synth,
		config: config,
		log:    logger.With("component", "audio"),
		after: func(delay time.Duration, play func()) {
			time.AfterFunc(delay, play)
		},
	}
}

// Run consumes events until the channel closes or ctx is cancelled.
func (cuer *Cuer) Run(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			cuer.Handle(event)
		}
	}
}

// Handle plays the tones planned for one event without waiting for them.
func (cuer *Cuer) Handle(event session.Event) {
	for _, tone := range Plan(event, cuer.config.Config()) {
		tone := tone
		play := func() { cuer.play(tone) }
		if tone.Delay > 0 {
			cuer.after(tone.Delay, play)
			continue
		}
		go play()
	}
}

func (cuer *Cuer) play(tone Tone) {
	defer func() {
		if recovered := recover(); recovered != nil {
			cuer.log.Error("tone panicked", "error", fmt.Sprint(recovered), "frequency", tone.Frequency)
		}
	}()
	if err := cuer.synth.Tone(tone.Frequency, tone.Duration, tone.Gain); err != nil {
		cuer.log.Warn("play tone", "error", err, "frequency", tone.Frequency)
	}
}
