package platform

import (
	"log/slog"

	"aerialtimer/internal/core/session"
)

// NewWakeLock returns the display wake lock of the current OS. Platforms
// without one get a lock whose Supported reports false.
func NewWakeLock(appName string, logger *slog.Logger) session.WakeLock {
	if logger == nil {
		logger = slog.Default()
	}
	return newWakeLock(appName, logger.With("component", "wakelock"))
}

type unsupportedWakeLock struct{}

func (unsupportedWakeLock) Supported() bool { return false }

func (unsupportedWakeLock) Acquire() error { return session.ErrWakeLockUnsupported }

func (unsupportedWakeLock) Release() error { return nil }
