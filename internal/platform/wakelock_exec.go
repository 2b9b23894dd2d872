//go:build linux || darwin

package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
)

// commandWakeLock holds the display awake for as long as a helper process
// runs.
type commandWakeLock struct {
	mu   sync.Mutex
	path string
	args []string
	log  *slog.Logger
	cmd  *exec.Cmd
	done chan struct{}
}

func (lock *commandWakeLock) Supported() bool {
	return true
}

func (lock *commandWakeLock) Acquire() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.cmd != nil {
		return nil
	}

	cmd := exec.Command(lock.path, lock.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", lock.path, err)
	}
	done := make(chan struct{})
	go func() {
		err := cmd.Wait()
		close(done)
		lock.exited(cmd, err)
	}()
	lock.cmd = cmd
	lock.done = done
	return nil
}

// Held reports whether the helper process is still running.
func (lock *commandWakeLock) Held() bool {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.cmd != nil
}

// exited forgets a helper that died on its own so the next Acquire starts
// a fresh one.
func (lock *commandWakeLock) exited(cmd *exec.Cmd, err error) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.cmd != cmd {
		return
	}
	lock.cmd = nil
	lock.done = nil
	lock.log.Warn("wake lock helper exited", "path", lock.path, "error", err)
}

func (lock *commandWakeLock) Release() error {
	lock.mu.Lock()
	cmd, done := lock.cmd, lock.done
	lock.cmd = nil
	lock.done = nil
	lock.mu.Unlock()
	if cmd == nil {
		return nil
	}

	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop %s: %w", lock.path, err)
	}
	<-done
	return nil
}
