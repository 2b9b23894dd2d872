package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"aerialtimer/internal/app"
	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
	"aerialtimer/internal/platform"
	"aerialtimer/internal/ui/preferences"
	"aerialtimer/internal/ui/timerwindow"
	"aerialtimer/internal/ui/tray"
	"aerialtimer/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	guard, err := platform.AcquireSingleInstance(app.Name)
	if err != nil {
		slog.Info("single instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx := context.Background()
	runtime, err := app.Bootstrap(ctx, app.Options{ConfigPath: *configPath, LogOutput: os.Stderr})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := runtime.Close(); err != nil {
			runtime.Log.Warn("shutdown", "error", err)
		}
	}()
	log := runtime.Log
	timer := runtime.Session

	fyneApp := fyneapp.NewWithID("com.aerialtimer.app")
	activeIcon := resources.MustLogo(resources.IconActive)
	pausedIcon := resources.MustLogo(resources.IconPaused)
	fyneApp.SetIcon(activeIcon)

	var (
		mainWindow  *timerwindow.Window
		prefsWindow *preferences.Window
	)

	saveConfig := func(config model.TimerConfig) {
		err := runtime.ApplyConfig(ctx, config)
		switch {
		case errors.Is(err, session.ErrConfigLocked):
			dialog.ShowError(err, mainWindow.Window())
		case err != nil:
			log.Warn("apply timer config", "error", err)
		}
		prefsWindow.UpdateConfig(timer.Config())
	}

	prefsWindow = preferences.New(fyneApp, timer.Config(), timer.CanEditConfig, saveConfig)
	mainWindow = timerwindow.New(fyneApp, timer, func() {
		prefsWindow.UpdateConfig(timer.Config())
		prefsWindow.Show()
	})
	defer mainWindow.Close()
	mainWindow.Window().SetMaster()

	guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: mainWindow.Show,
			OnPreferences: func() {
				prefsWindow.UpdateConfig(timer.Config())
				prefsWindow.Show()
			},
			OnToggle: func() {
				switch state := timer.State(); {
				case state.IsPaused:
					timer.Resume()
				case state.IsRunning:
					timer.Pause()
				default:
					timer.Start()
				}
			},
			OnSkip:  timer.Skip,
			OnReset: timer.Reset,
			OnPreset: func(preset model.Preset) {
				if err := runtime.ApplyPreset(ctx, preset); err != nil {
					log.Warn("apply preset", "preset", preset.Name, "error", err)
				}
				prefsWindow.UpdateConfig(timer.Config())
			},
			OnQuit: fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(activeIcon)
		trayManager.SetState(timer.State())
	} else {
		log.Info("system tray unsupported on this platform")
	}

	// The display only needs to stay awake while the app is in front.
	fyneApp.Lifecycle().SetOnEnteredForeground(timer.Foreground)
	fyneApp.Lifecycle().SetOnExitedForeground(timer.Background)

	watchCtx, stopWatching := context.WithCancel(ctx)
	defer stopWatching()
	go mainWindow.Watch(watchCtx, timer.Subscribe(16))
	if trayManager != nil {
		events := timer.Subscribe(16)
		go watchTray(watchCtx, events, trayManager, fyneApp, activeIcon, pausedIcon)
	}
	go notifyWakeLockErrors(watchCtx, timer.Subscribe(4), fyneApp)

	mainWindow.Show()
	fyneApp.Run()
}

// watchTray refreshes the tray at most once per second of countdown and on
// every status change.
func watchTray(ctx context.Context, events <-chan session.Event, manager *tray.Manager, fyneApp fyne.App, active, paused fyne.Resource) {
	desktopApp := fyneApp.(desktop.App)
	var lastIcon fyne.Resource
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			state := event.State
			icon := active
			if state.IsPaused || (!state.IsRunning && state.Phase != interval.PhaseFinished) {
				icon = paused
			}
			fyne.Do(func() {
				manager.SetState(state)
				if icon != lastIcon {
					desktopApp.SetSystemTrayIcon(icon)
					lastIcon = icon
				}
			})
		}
	}
}

// notifyWakeLockErrors tells the user, at most once a minute, that the
// screen may turn off mid-workout.
func notifyWakeLockErrors(ctx context.Context, events <-chan session.Event, fyneApp fyne.App) {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type != session.EventWakeLockError || event.At.Sub(last) < time.Minute {
				continue
			}
			last = event.At
			fyneApp.SendNotification(fyne.NewNotification("AerialTimer", "The screen may turn off during the workout: "+event.Message))
		}
	}
}
