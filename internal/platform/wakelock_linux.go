//go:build linux

package platform

import (
	"log/slog"
	"os/exec"

	"aerialtimer/internal/core/session"
)

func newWakeLock(appName string, logger *slog.Logger) session.WakeLock {
	path, err := exec.LookPath("systemd-inhibit")
	if err != nil {
		logger.Debug("systemd-inhibit not found, wake lock unsupported")
		return unsupportedWakeLock{}
	}
	return &commandWakeLock{
		path: path,
		args: []string{
			"--what=idle",
			"--who=" + appName,
			"--why=Workout in progress",
			"--mode=block",
			"sleep", "infinity",
		},
		log: logger,
	}
}
