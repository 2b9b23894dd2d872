// Package tray mirrors the timer in the system tray menu.
package tray

import (
	"fmt"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnSkip        func()
	OnReset       func()
	OnPreset      func(model.Preset)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	presets    *fyne.MenuItem
	state      interval.State
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(i18n.T("Start"), func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.skipItem = fyne.NewMenuItem(i18n.T("Skip"), func() {
		if manager.callbacks.OnSkip != nil {
			manager.callbacks.OnSkip()
		}
	})
	manager.resetItem = fyne.NewMenuItem(i18n.T("Reset"), func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.presets = fyne.NewMenuItem(i18n.T("Preset"), nil)
	items := make([]*fyne.MenuItem, 0, len(model.Presets))
	for _, preset := range model.Presets {
		preset := preset
		items = append(items, fyne.NewMenuItem(preset.Name, func() {
			if manager.callbacks.OnPreset != nil {
				manager.callbacks.OnPreset(preset)
			}
		}))
	}
	manager.presets.ChildMenu = fyne.NewMenu("", items...)

	manager.SetState(interval.State{Phase: interval.PhasePrepare, CurrentSet: 1})
	return manager
}

// SetState updates the status line and the enabled commands.
func (manager *Manager) SetState(state interval.State) {
	manager.state = state
	manager.statusItem.Label = StatusLine(state)

	switch {
	case state.IsPaused:
		manager.toggleItem.Label = i18n.T("Resume")
	case state.IsRunning:
		manager.toggleItem.Label = i18n.T("Pause")
	default:
		manager.toggleItem.Label = i18n.T("Start")
	}
	manager.toggleItem.Disabled = state.Finished()
	manager.skipItem.Disabled = state.Finished()
	// Presets replace the configuration, which is locked while counting.
	manager.presets.Disabled = state.Active()
	manager.refreshMenu()
}

// StatusLine is the disabled first menu entry, e.g. "Work 00:17 (paused)".
func StatusLine(state interval.State) string {
	if state.Finished() {
		return i18n.Phase(state.Phase)
	}
	status := fmt.Sprintf("%s %s", i18n.Phase(state.Phase), interval.FormatSeconds(state.TimeRemaining))
	if state.IsPaused {
		status += " (paused)"
	}
	return status
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("AerialTimer",
		manager.statusItem,
		fyne.NewMenuItem(i18n.T("Show timer"), func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.skipItem,
		manager.resetItem,
		manager.presets,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Preferences"), func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem(i18n.T("Quit"), func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
