// Package timerwindow is the main desktop window: the countdown, the
// phase, round and set counters, overall progress and the five commands.
package timerwindow

import (
	"context"
	"image/color"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
	"aerialtimer/internal/i18n"
	"aerialtimer/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Controller is the part of the session the window drives.
type Controller interface {
	Start()
	Pause()
	Resume()
	Reset()
	Skip()
	State() interval.State
	Config() model.TimerConfig
}

// Window manages the timer UI.
type Window struct {
	window     fyne.Window
	controller Controller
	background *canvas.Rectangle
	phase      *canvas.Text
	countdown  *canvas.Text
	rounds     *canvas.Text
	exercise   *canvas.Text
	progress   *widget.ProgressBar
	primary    *widget.Button
	skip       *widget.Button
	reset      *widget.Button
	flash      *animation.Engine
	base       color.Color
}

// New creates the timer window. onPreferences opens the preferences form.
func New(app fyne.App, controller Controller, onPreferences func()) *Window {
	window := app.NewWindow("AerialTimer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewRectangle(PhaseColor(interval.PhasePrepare))

	phase := canvas.NewText("", color.White)
	phase.Alignment = fyne.TextAlignCenter
	phase.TextStyle = fyne.TextStyle{Bold: true}
	phase.TextSize = 28

	countdown := canvas.NewText("--:--", color.White)
	countdown.Alignment = fyne.TextAlignCenter
	countdown.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	countdown.TextSize = 96

	rounds := canvas.NewText("", color.White)
	rounds.Alignment = fyne.TextAlignCenter
	rounds.TextSize = 18

	exercise := canvas.NewText("", color.White)
	exercise.Alignment = fyne.TextAlignCenter
	exercise.TextSize = 20

	progress := widget.NewProgressBar()

	timer := &Window{
		window:     window,
		controller: controller,
		background: background,
		phase:      phase,
		countdown:  countdown,
		rounds:     rounds,
		exercise:   exercise,
		progress:   progress,
	}

	timer.primary = widget.NewButton("", timer.togglePrimary)
	timer.primary.Importance = widget.HighImportance
	timer.skip = widget.NewButton(i18n.T("Skip"), controller.Skip)
	timer.reset = widget.NewButton(i18n.T("Reset"), controller.Reset)
	preferences := widget.NewButton(i18n.T("Preferences"), func() {
		if onPreferences != nil {
			onPreferences()
		}
	})

	timer.flash = animation.New(animation.DefaultConfig(), func(c color.Color) {
		fyne.Do(func() {
			timer.background.FillColor = c
			timer.background.Refresh()
		})
	})

	buttons := container.NewHBox(layout.NewSpacer(), timer.reset, timer.primary, timer.skip, layout.NewSpacer(), preferences)
	labels := container.NewVBox(layout.NewSpacer(), phase, countdown, rounds, exercise, layout.NewSpacer())
	content := container.NewBorder(nil, container.NewVBox(progress, buttons), nil, nil, labels)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(520, 420))

	timer.render(controller.State(), controller.Config())
	return timer
}

// Window exposes the fyne window for lifecycle wiring.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// Watch renders every event until the channel closes or ctx is cancelled.
func (timer *Window) Watch(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			timer.Apply(event)
		}
	}
}

// Apply renders one event. Safe to call from any goroutine.
func (timer *Window) Apply(event session.Event) {
	config := timer.controller.Config()
	fyne.Do(func() {
		timer.render(event.State, config)
	})
	if event.Type == session.EventPhaseChange && event.PhaseChanged() {
		timer.flash.Flash(context.Background(), color.White, PhaseColor(event.State.Phase))
	}
}

// Close stops running animations.
func (timer *Window) Close() {
	timer.flash.Stop()
}

func (timer *Window) render(state interval.State, config model.TimerConfig) {
	view := NewView(state, config)

	timer.phase.Text = view.Phase
	timer.phase.Color = view.Accent
	timer.countdown.Text = view.Countdown
	timer.countdown.Color = view.Accent
	timer.rounds.Text = view.Rounds
	timer.exercise.Text = view.Exercise
	for _, text := range []*canvas.Text{timer.phase, timer.countdown, timer.rounds, timer.exercise} {
		text.Refresh()
	}

	timer.progress.SetValue(view.Progress)
	timer.primary.SetText(view.Primary)
	setEnabled(timer.skip, view.CanSkip)
	setEnabled(timer.reset, view.CanReset)

	if timer.base != view.Background {
		timer.base = view.Background
		timer.background.FillColor = view.Background
		timer.background.Refresh()
	}
}

func (timer *Window) togglePrimary() {
	state := timer.controller.State()
	switch {
	case state.IsPaused:
		timer.controller.Resume()
	case state.IsRunning:
		timer.controller.Pause()
	default:
		timer.controller.Start()
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
