// Package tui is the terminal front end: the same session and commands as
// the desktop window, rendered with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
	"aerialtimer/internal/i18n"
	"aerialtimer/internal/storage"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historyLimit = 8

// Controller is the session surface the terminal UI drives.
type Controller interface {
	Start()
	Pause()
	Resume()
	Reset()
	Skip()
	State() interval.State
	Config() model.TimerConfig
	UpdateConfig(model.TimerConfig) error
}

// History lists recorded workouts.
type History interface {
	Recent(ctx context.Context, limit int) ([]storage.Workout, error)
}

// Saver persists a configuration chosen from the terminal.
type Saver interface {
	Save(ctx context.Context, config model.TimerConfig) error
}

type eventMsg session.Event

type closedMsg struct{}

type recordedMsg storage.Workout

type historyMsg struct {
	workouts []storage.Workout
	err      error
}

// Model is the bubbletea model.
type Model struct {
	controller Controller
	events     <-chan session.Event
	recorded   <-chan storage.Workout
	history    History
	saver      Saver
	now        func() time.Time

	keys     keyMap
	help     help.Model
	progress progress.Model

	state       interval.State
	config      model.TimerConfig
	showHistory bool
	workouts    []storage.Workout
	err         error
	width       int
}

// New creates the model. history and saver may be nil.
func New(controller Controller, events <-chan session.Event, history History, saver Saver) Model {
	return Model{
		controller: controller,
		events:     events,
		history:    history,
		saver:      saver,
		now:        time.Now,
		keys:       defaultKeyMap(),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		state:      controller.State(),
		config:     controller.Config(),
	}
}

// WatchRecorded refreshes the history list whenever a workout is stored.
func (m Model) WatchRecorded(recorded <-chan storage.Workout) Model {
	m.recorded = recorded
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), waitForRecorded(m.recorded))
}

func waitForRecorded(recorded <-chan storage.Workout) tea.Cmd {
	if recorded == nil {
		return nil
	}
	return func() tea.Msg {
		workout, ok := <-recorded
		if !ok {
			return nil
		}
		return recordedMsg(workout)
	}
}

func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	history := m.history
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		workouts, err := history.Recent(ctx, historyLimit)
		return historyMsg{workouts: workouts, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, min(msg.Width-4, 60))
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		m.state = msg.State
		m.config = m.controller.Config()
		return m, waitForEvent(m.events)

	case recordedMsg:
		cmds := []tea.Cmd{waitForRecorded(m.recorded)}
		if m.showHistory {
			cmds = append(cmds, m.loadHistory())
		}
		return m, tea.Batch(cmds...)

	case closedMsg:
		return m, tea.Quit

	case historyMsg:
		m.workouts = msg.workouts
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		switch state := m.controller.State(); {
		case state.IsPaused:
			m.controller.Resume()
		case state.IsRunning:
			m.controller.Pause()
		default:
			m.controller.Start()
		}
	case key.Matches(msg, m.keys.Skip):
		m.controller.Skip()
	case key.Matches(msg, m.keys.Reset):
		m.controller.Reset()
	case key.Matches(msg, m.keys.Preset):
		m.err = m.nextPreset()
	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			return m, m.loadHistory()
		}
	}
	m.state = m.controller.State()
	m.config = m.controller.Config()
	return m, nil
}

// nextPreset cycles the built-in presets, keeping sound settings.
func (m Model) nextPreset() error {
	current := m.controller.Config()
	next := model.Presets[0]
	for i, preset := range model.Presets {
		if strings.EqualFold(preset.Name, current.PresetName) {
			next = model.Presets[(i+1)%len(model.Presets)]
			break
		}
	}

	config := current.WithPreset(next, m.now())
	if err := m.controller.UpdateConfig(config); err != nil {
		return err
	}
	if m.saver == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.saver.Save(ctx, config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func (m Model) View() string {
	var b strings.Builder

	title := "AerialTimer"
	if m.config.PresetName != "" {
		title += " · " + m.config.PresetName
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	phase := i18n.Phase(m.state.Phase)
	if m.state.IsPaused {
		phase += " (paused)"
	}
	b.WriteString(phaseStyle(m.state.Phase).Render(phase))
	b.WriteString("\n")
	b.WriteString(countdownStyle.BorderForeground(phaseColors[m.state.Phase]).Render(interval.FormatSeconds(m.state.TimeRemaining)))
	b.WriteString("\n")
	b.WriteString(m.counters())
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(interval.Progress(m.state, m.config)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.showHistory {
		b.WriteString("\n")
		b.WriteString(m.historyView())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) counters() string {
	round := max(m.state.CurrentRound, 1)
	parts := []string{fmt.Sprintf("%s %d/%d", i18n.T("Round"), round, m.config.Rounds)}
	if m.config.Sets > 1 {
		parts = append(parts, fmt.Sprintf("%s %d/%d", i18n.T("Set"), m.state.CurrentSet, m.config.Sets))
	}
	line := strings.Join(parts, "  ")
	if m.config.ShowExerciseName && m.config.ExerciseName != "" && m.state.Phase == interval.PhaseWork {
		line += "  " + m.config.ExerciseName
	}
	return subtleStyle.Render(line)
}

func (m Model) historyView() string {
	var b strings.Builder
	b.WriteString(historyHeaderStyle.Render(i18n.T("History")))
	b.WriteString("\n")
	if len(m.workouts) == 0 {
		b.WriteString(subtleStyle.Render("no workouts yet"))
		b.WriteString("\n")
		return b.String()
	}
	for _, workout := range m.workouts {
		mark := "✗"
		if workout.Completed {
			mark = "✓"
		}
		name := workout.PresetName
		if name == "" {
			name = "Custom"
		}
		fmt.Fprintf(&b, "%s %s  %-20s %s\n",
			mark,
			workout.StartedAt.Local().Format("2006-01-02 15:04"),
			name,
			interval.FormatSeconds(workout.ElapsedSeconds),
		)
	}
	return b.String()
}
