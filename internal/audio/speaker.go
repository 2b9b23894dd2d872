package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// ErrAudioUnavailable is returned by Speaker when no output device could
// be opened.
var ErrAudioUnavailable = errors.New("audio output unavailable")

const sampleRate = beep.SampleRate(44100)

// Speaker synthesizes sine tones on the default audio device.
type Speaker struct {
	mu    sync.Mutex
	ready bool
	log   *slog.Logger
}

// NewSpeaker opens the audio device. A device that cannot be opened leaves
// the speaker usable but silent.
func NewSpeaker(logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Speaker{log: logger.With("component", "speaker")}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		s.log.Warn("audio disabled: failed to initialize speaker", "error", err)
		return s
	}
	s.ready = true
	return s
}

// Ready reports whether the audio device is open.
func (s *Speaker) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Tone plays a decaying sine tone and blocks until it has been mixed.
func (s *Speaker) Tone(frequency float64, duration time.Duration, gain float64) error {
	if !s.Ready() {
		return ErrAudioUnavailable
	}
	if duration <= 0 || gain <= 0 {
		return nil
	}

	sine, err := generators.SineTone(sampleRate, frequency)
	if err != nil {
		return fmt.Errorf("sine tone %.0f Hz: %w", frequency, err)
	}
	total := sampleRate.N(duration)
	done := make(chan struct{})
	tone := beep.Seq(
		newEnvelope(beep.Take(total, sine), gain, total),
		beep.Callback(func() { close(done) }),
	)

	speaker.Play(tone)

	select {
	case <-done:
		return nil
	case <-time.After(duration + time.Second):
		return fmt.Errorf("tone %.0f Hz did not finish", frequency)
	}
}

// Close releases the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	s.ready = false
	speaker.Close()
}
