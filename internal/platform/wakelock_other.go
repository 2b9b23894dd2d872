//go:build !linux && !darwin && !windows

package platform

import (
	"log/slog"

	"aerialtimer/internal/core/session"
)

func newWakeLock(_ string, _ *slog.Logger) session.WakeLock {
	return unsupportedWakeLock{}
}
