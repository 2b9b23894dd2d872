package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// decayRate sets how far the envelope falls over one tone: exp(-5) leaves
// under one percent of the peak at the end, so tones stop without a click.
const decayRate = 5.0

// envelope scales a finite streamer by gain with an exponential decay over
// total samples.
type envelope struct {
	streamer beep.Streamer
	gain     float64
	total    int
	position int
}

func newEnvelope(streamer beep.Streamer, gain float64, total int) *envelope {
	if total <= 0 {
		total = 1
	}
	return &envelope{streamer: streamer, gain: gain, total: total}
}

func (env *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := env.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		factor := env.gain * math.Exp(-decayRate*float64(env.position)/float64(env.total))
		samples[i][0] *= factor
		samples[i][1] *= factor
		env.position++
	}
	return n, ok
}

func (env *envelope) Err() error {
	return env.streamer.Err()
}
