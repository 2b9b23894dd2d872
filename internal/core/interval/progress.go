package interval

import (
	"fmt"

	"aerialtimer/internal/core/model"
)

// Segments is the number of phase segments a full run visits before
// finishing: one prepare, rounds work and rounds-1 rest per set, and a
// set-rest between sets.
func Segments(config model.TimerConfig) int {
	config = config.Normalize()
	return 1 + config.Sets*(2*config.Rounds-1) + (config.Sets - 1)
}

// PhaseDuration is the configured length of phase.
func PhaseDuration(phase Phase, config model.TimerConfig) int {
	config = config.Normalize()
	switch phase {
	case PhasePrepare:
		return config.PrepareTime
	case PhaseWork:
		return config.WorkDuration
	case PhaseRest:
		return config.RestDuration
	case PhaseSetRest:
		return config.RestBetweenSets
	default:
		return 0
	}
}

// Elapsed counts the seconds already behind the session.
func Elapsed(state State, config model.TimerConfig) int {
	config = config.Normalize()
	total := config.TotalSeconds()
	if state.Finished() {
		return total
	}

	perRound := config.WorkDuration + config.RestDuration
	perSet := config.Rounds*config.WorkDuration + (config.Rounds-1)*config.RestDuration
	completedSets := state.CurrentSet - 1
	before := config.PrepareTime + completedSets*(perSet+config.RestBetweenSets)

	var done int
	switch state.Phase {
	case PhasePrepare:
		done = 0
	case PhaseWork:
		done = before + (state.CurrentRound-1)*perRound
	case PhaseRest:
		// CurrentRound already points at the round after this rest.
		done = before + (state.CurrentRound-2)*perRound + config.WorkDuration
	case PhaseSetRest:
		done = config.PrepareTime + (completedSets-1)*(perSet+config.RestBetweenSets) + perSet
	}
	done += PhaseDuration(state.Phase, config) - state.TimeRemaining
	if done < 0 {
		return 0
	}
	if done > total {
		return total
	}
	return done
}

// Progress is Elapsed as a fraction of the whole workout.
func Progress(state State, config model.TimerConfig) float64 {
	total := config.TotalSeconds()
	if total <= 0 {
		if state.Finished() {
			return 1
		}
		return 0
	}
	return float64(Elapsed(state, config)) / float64(total)
}

// FormatSeconds renders seconds as mm:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
