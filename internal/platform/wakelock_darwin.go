//go:build darwin

package platform

import (
	"log/slog"
	"os/exec"

	"aerialtimer/internal/core/session"
)

func newWakeLock(_ string, logger *slog.Logger) session.WakeLock {
	path, err := exec.LookPath("caffeinate")
	if err != nil {
		logger.Debug("caffeinate not found, wake lock unsupported")
		return unsupportedWakeLock{}
	}
	// -d keeps the display awake, -i prevents idle sleep.
	return &commandWakeLock{path: path, args: []string{"-d", "-i"}, log: logger}
}
