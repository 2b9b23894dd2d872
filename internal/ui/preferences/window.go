// Package preferences is the workout editing form.
package preferences

import (
	"time"

	"aerialtimer/internal/core/model"
	"aerialtimer/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window  fyne.Window
	config  model.TimerConfig
	canEdit func() bool
	onSave  func(model.TimerConfig)

	preset          *widget.Select
	work            *widget.Entry
	rest            *widget.Entry
	restBetweenSets *widget.Entry
	prepare         *widget.Entry
	rounds          *widget.Entry
	sets            *widget.Entry
	countdown       *widget.Entry
	sound           *widget.Check
	volume          *widget.Slider
	showExercise    *widget.Check
	exerciseName    *widget.Entry
}

// New creates a preferences window. canEdit is consulted before saving so
// a running workout is never changed underneath the user.
func New(app fyne.App, config model.TimerConfig, canEdit func() bool, onSave func(model.TimerConfig)) *Window {
	window := app.NewWindow("AerialTimer " + i18n.T("Preferences"))

	prefs := &Window{
		window:          window,
		config:          config,
		canEdit:         canEdit,
		onSave:          onSave,
		work:            widget.NewEntry(),
		rest:            widget.NewEntry(),
		restBetweenSets: widget.NewEntry(),
		prepare:         widget.NewEntry(),
		rounds:          widget.NewEntry(),
		sets:            widget.NewEntry(),
		countdown:       widget.NewEntry(),
		sound:           widget.NewCheck("Sound", nil),
		volume:          widget.NewSlider(0, model.MaxBeepVolume),
		showExercise:    widget.NewCheck("Show exercise name", nil),
		exerciseName:    widget.NewEntry(),
	}
	prefs.volume.Step = 5
	prefs.preset = widget.NewSelect(model.PresetNames(), prefs.selectPreset)
	prefs.preset.PlaceHolder = "Custom"

	form := widget.NewForm(
		widget.NewFormItem(i18n.T("Preset"), prefs.preset),
		widget.NewFormItem("Work (sec)", prefs.work),
		widget.NewFormItem("Rest (sec)", prefs.rest),
		widget.NewFormItem("Rounds", prefs.rounds),
		widget.NewFormItem("Sets", prefs.sets),
		widget.NewFormItem("Rest between sets (sec)", prefs.restBetweenSets),
		widget.NewFormItem("Prepare (sec)", prefs.prepare),
		widget.NewFormItem("Countdown beeps", prefs.countdown),
		widget.NewFormItem("Volume", prefs.volume),
		widget.NewFormItem("", prefs.sound),
		widget.NewFormItem("", prefs.showExercise),
		widget.NewFormItem("Exercise", prefs.exerciseName),
	)

	saveButton := widget.NewButton(i18n.T("Save"), prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton(i18n.T("Cancel"), window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 480))

	prefs.UpdateConfig(config)
	return prefs
}

// Show displays the preferences window with the current values.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.TimerConfig) {
	prefs.config = config
	prefs.setFields(FieldsFrom(config))
	if _, ok := model.FindPreset(config.PresetName); ok {
		prefs.preset.SetSelected(config.PresetName)
	} else {
		prefs.preset.ClearSelected()
	}
}

func (prefs *Window) setFields(fields Fields) {
	prefs.work.SetText(fields.Work)
	prefs.rest.SetText(fields.Rest)
	prefs.restBetweenSets.SetText(fields.RestBetweenSets)
	prefs.prepare.SetText(fields.Prepare)
	prefs.rounds.SetText(fields.Rounds)
	prefs.sets.SetText(fields.Sets)
	prefs.countdown.SetText(fields.CountdownBeeps)
	prefs.sound.SetChecked(fields.EnableSound)
	prefs.volume.SetValue(fields.BeepVolume)
	prefs.showExercise.SetChecked(fields.ShowExerciseName)
	prefs.exerciseName.SetText(fields.ExerciseName)
}

func (prefs *Window) fields() Fields {
	return Fields{
		Work:             prefs.work.Text,
		Rest:             prefs.rest.Text,
		RestBetweenSets:  prefs.restBetweenSets.Text,
		Prepare:          prefs.prepare.Text,
		Rounds:           prefs.rounds.Text,
		Sets:             prefs.sets.Text,
		CountdownBeeps:   prefs.countdown.Text,
		EnableSound:      prefs.sound.Checked,
		BeepVolume:       prefs.volume.Value,
		ShowExerciseName: prefs.showExercise.Checked,
		ExerciseName:     prefs.exerciseName.Text,
	}
}

// selectPreset fills the timing fields from a preset and keeps the sound
// and display settings already on the form.
func (prefs *Window) selectPreset(name string) {
	preset, ok := model.FindPreset(name)
	if !ok || name == prefs.config.PresetName {
		return
	}
	current := prefs.fields().Apply(prefs.config)
	prefs.config = current.WithPreset(preset, time.Now())
	prefs.setFields(FieldsFrom(prefs.config))
}

func (prefs *Window) handleSave() {
	if prefs.canEdit != nil && !prefs.canEdit() {
		dialog.ShowInformation(i18n.T("Preferences"), i18n.T("Stop the timer to edit the workout"), prefs.window)
		return
	}

	config := prefs.fields().Apply(prefs.config).Applied(time.Now())
	prefs.config = config
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}
