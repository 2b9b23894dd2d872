package interval

import (
	"testing"

	"aerialtimer/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestElapsedTracksTicks(t *testing.T) {
	config := model.TimerConfig{WorkDuration: 5, RestDuration: 3, RestBetweenSets: 4, PrepareTime: 2, Rounds: 3, Sets: 2}
	state := Start(NewState(config), config)

	for ticks := 0; !state.Finished(); ticks++ {
		assert.Equal(t, ticks, Elapsed(state, config), "after %d ticks: %s", ticks, state)
		state = Tick(state, config)
	}
	assert.Equal(t, config.TotalSeconds(), Elapsed(state, config))
	assert.Equal(t, 1.0, Progress(state, config))
}

func TestProgressBounds(t *testing.T) {
	config := model.TimerConfig{Rounds: 1, Sets: 1}
	assert.Equal(t, 0.0, Progress(NewState(config), config))

	config = model.TimerConfig{WorkDuration: 10, PrepareTime: 10, Rounds: 1, Sets: 1}
	assert.Equal(t, 0.0, Progress(NewState(config), config))
}

func TestPhaseDuration(t *testing.T) {
	config := model.TimerConfig{WorkDuration: 5, RestDuration: 3, RestBetweenSets: 4, PrepareTime: 2, Rounds: 1, Sets: 1}

	assert.Equal(t, 2, PhaseDuration(PhasePrepare, config))
	assert.Equal(t, 5, PhaseDuration(PhaseWork, config))
	assert.Equal(t, 3, PhaseDuration(PhaseRest, config))
	assert.Equal(t, 4, PhaseDuration(PhaseSetRest, config))
	assert.Equal(t, 0, PhaseDuration(PhaseFinished, config))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00", FormatSeconds(-4))
	assert.Equal(t, "00:09", FormatSeconds(9))
	assert.Equal(t, "01:30", FormatSeconds(90))
	assert.Equal(t, "61:01", FormatSeconds(3661))
}
