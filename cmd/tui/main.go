package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"aerialtimer/internal/app"
	"aerialtimer/internal/platform"
	"aerialtimer/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "aerialtimer:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	guard, err := platform.AcquireSingleInstance(app.Name)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	// The terminal belongs to the UI; the log goes to a file.
	logOutput, closeLog := openLogFile()
	defer closeLog()

	ctx := context.Background()
	runtime, err := app.Bootstrap(ctx, app.Options{ConfigPath: configPath, LogOutput: logOutput})
	if err != nil {
		return err
	}
	defer func() {
		if err := runtime.Close(); err != nil {
			runtime.Log.Warn("shutdown", "error", err)
		}
	}()

	model := tui.New(runtime.Session, runtime.Session.Subscribe(64), runtime.Stores.History, runtime.Stores.Config).
		WatchRecorded(runtime.Recorder.Subscribe(4))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func openLogFile() (io.Writer, func()) {
	dir, err := platform.AppDir(app.Name)
	if err != nil {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	file, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return file, func() { _ = file.Close() }
}
