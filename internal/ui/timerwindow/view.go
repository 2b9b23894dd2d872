package timerwindow

import (
	"fmt"
	"image/color"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/i18n"
)

// View is everything the window shows for one state.
type View struct {
	Phase      string
	Countdown  string
	Rounds     string
	Exercise   string
	Progress   float64
	Primary    string
	CanSkip    bool
	CanReset   bool
	Background color.Color
	Accent     color.Color
}

// NewView derives the display of state under config.
func NewView(state interval.State, config model.TimerConfig) View {
	config = config.Normalize()
	view := View{
		Phase:      i18n.Phase(state.Phase),
		Countdown:  interval.FormatSeconds(state.TimeRemaining),
		Progress:   interval.Progress(state, config),
		CanSkip:    !state.Finished(),
		CanReset:   state.IsRunning || state.Finished() || state.CurrentRound > 0,
		Background: PhaseColor(state.Phase),
		Accent:     accentColor(state.Phase),
	}

	round := state.CurrentRound
	if round == 0 {
		round = 1
	}
	view.Rounds = fmt.Sprintf("%s %d/%d", i18n.T("Round"), round, config.Rounds)
	if config.Sets > 1 {
		view.Rounds += fmt.Sprintf("  ·  %s %d/%d", i18n.T("Set"), state.CurrentSet, config.Sets)
	}
	if config.ShowExerciseName && state.Phase == interval.PhaseWork {
		view.Exercise = config.ExerciseName
	}

	switch {
	case state.IsPaused:
		view.Primary = i18n.T("Resume")
	case state.IsRunning:
		view.Primary = i18n.T("Pause")
	default:
		view.Primary = i18n.T("Start")
	}
	return view
}

// PhaseColor is the window background of phase.
func PhaseColor(phase interval.Phase) color.Color {
	switch phase {
	case interval.PhaseWork:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	case interval.PhaseRest:
		return color.NRGBA{R: 27, G: 94, B: 32, A: 255}
	case interval.PhaseSetRest:
		return color.NRGBA{R: 13, G: 71, B: 161, A: 255}
	case interval.PhaseFinished:
		return color.NRGBA{R: 74, G: 20, B: 140, A: 255}
	default:
		return color.NRGBA{R: 38, G: 50, B: 56, A: 255}
	}
}

func accentColor(phase interval.Phase) color.Color {
	if phase == interval.PhasePrepare {
		return color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}
