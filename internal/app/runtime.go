// Package app wires the timer core to its collaborators for both
// executables.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"aerialtimer/internal/audio"
	"aerialtimer/internal/config"
	"aerialtimer/internal/core/model"
	"aerialtimer/internal/core/session"
	"aerialtimer/internal/history"
	"aerialtimer/internal/i18n"
	"aerialtimer/internal/platform"
	"aerialtimer/internal/storage"
)

// Name is the application name used for directories and the instance lock.
const Name = "aerialtimer"

// Options tune Bootstrap.
type Options struct {
	// ConfigPath overrides <config dir>/aerialtimer/config.yaml.
	ConfigPath string
	// LogOutput receives the process log.
	LogOutput io.Writer
	// Synth replaces the audio device, mainly for tests.
	Synth audio.Synth
	// WakeLock replaces the platform wake lock.
	WakeLock session.WakeLock
	// EventBuffer is the queue length of each internal subscriber.
	EventBuffer int
}

// Runtime owns the session and every subscriber attached to it.
type Runtime struct {
	Config   *config.Config
	Log      *slog.Logger
	Stores   *storage.Stores
	Session  *session.Session
	Recorder *history.Recorder

	speaker *audio.Speaker
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
}

// Bootstrap loads the configuration, opens the stores and starts the
// session with audio cues, history recording and the wake lock.
func Bootstrap(ctx context.Context, options Options) (*Runtime, error) {
	dataDir, err := platform.AppDir(Name)
	if err != nil {
		return nil, err
	}
	configPath := options.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(dataDir, config.FileName)
	}
	cfg, err := config.Load(configPath, dataDir)
	if err != nil {
		return nil, err
	}
	if options.LogOutput == nil {
		options.LogOutput = io.Discard
	}
	log := cfg.Log.NewLogger(options.LogOutput)
	lang := i18n.Setup(cfg.Language, log)

	stores, err := storage.Open(ctx, cfg.Storage.Backend, cfg.Storage.DataDir, cfg.Storage.Profile)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	timerConfig, err := stores.Config.Load(ctx)
	if err != nil {
		log.Warn("load timer config, using defaults", "error", err)
		timerConfig = model.DefaultConfig()
	}
	log.Info("aerialtimer starting",
		"backend", cfg.Storage.Backend,
		"data_dir", cfg.Storage.DataDir,
		"profile", cfg.Storage.Profile,
		"lang", lang,
		"preset", timerConfig.PresetName,
	)

	runCtx, cancel := context.WithCancel(context.Background())
	runtime := &Runtime{
		Config: cfg,
		Log:    log,
		Stores: stores,
		Session: session.New(timerConfig, session.Options{
			TickInterval: cfg.Timer.TickInterval,
			Logger:       log,
		}),
		cancel: cancel,
	}

	wakeLock := options.WakeLock
	if wakeLock == nil {
		wakeLock = platform.NewWakeLock(Name, log)
	}
	runtime.Session.SetWakeLock(wakeLock)

	synth := options.Synth
	if synth == nil {
		runtime.speaker = audio.NewSpeaker(log)
		synth = runtime.speaker
	}
	cuer := audio.NewCuer(synth, runtime.Session, log)
	recorder := history.NewRecorder(stores.History, runtime.Session, log)
	runtime.Recorder = recorder

	if options.EventBuffer <= 0 {
		options.EventBuffer = 64
	}
	cueEvents := runtime.Session.Subscribe(options.EventBuffer)
	historyEvents := runtime.Session.Subscribe(options.EventBuffer)
	runtime.wg.Add(2)
	go func() {
		defer runtime.wg.Done()
		cuer.Run(runCtx, cueEvents)
	}()
	go func() {
		defer runtime.wg.Done()
		recorder.Run(runCtx, historyEvents)
	}()

	return runtime, nil
}

// ApplyConfig replaces the session configuration and persists it. It
// fails with session.ErrConfigLocked while the countdown is active.
func (runtime *Runtime) ApplyConfig(ctx context.Context, config model.TimerConfig) error {
	if err := runtime.Session.UpdateConfig(config); err != nil {
		return err
	}
	if err := runtime.Stores.Config.Save(ctx, runtime.Session.Config()); err != nil {
		return fmt.Errorf("save timer config: %w", err)
	}
	return nil
}

// ApplyPreset switches to preset, keeping the sound and display settings.
func (runtime *Runtime) ApplyPreset(ctx context.Context, preset model.Preset) error {
	config := runtime.Session.Config().WithPreset(preset, time.Now())
	return runtime.ApplyConfig(ctx, config)
}

// Close stops the session, waits for the subscribers to drain and closes
// the stores.
func (runtime *Runtime) Close() error {
	var err error
	runtime.once.Do(func() {
		runtime.Session.Close()
		runtime.wg.Wait()
		runtime.cancel()
		if runtime.speaker != nil {
			runtime.speaker.Close()
		}
		if closeErr := runtime.Stores.Close(); closeErr != nil {
			err = fmt.Errorf("close storage: %w", closeErr)
		}
		runtime.Log.Info("aerialtimer stopped")
	})
	return err
}
