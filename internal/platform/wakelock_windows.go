//go:build windows

package platform

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"syscall"

	"aerialtimer/internal/core/session"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

// threadWakeLock keeps one OS thread parked with the display-required
// execution state set. The state belongs to the thread that set it.
type threadWakeLock struct {
	mu      sync.Mutex
	proc    *syscall.LazyProc
	release chan struct{}
	done    chan struct{}
}

func newWakeLock(_ string, _ *slog.Logger) session.WakeLock {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	return &threadWakeLock{proc: kernel32.NewProc("SetThreadExecutionState")}
}

func (lock *threadWakeLock) Supported() bool {
	return lock.proc.Find() == nil
}

func (lock *threadWakeLock) Acquire() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.release != nil {
		return nil
	}
	if err := lock.proc.Find(); err != nil {
		return session.ErrWakeLockUnsupported
	}

	release := make(chan struct{})
	done := make(chan struct{})
	result := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		previous, _, callErr := lock.proc.Call(uintptr(esContinuous | esSystemRequired | esDisplayRequired))
		if previous == 0 {
			result <- fmt.Errorf("set thread execution state: %w", callErr)
			return
		}
		result <- nil
		<-release
		lock.proc.Call(uintptr(esContinuous))
	}()

	if err := <-result; err != nil {
		return err
	}
	lock.release = release
	lock.done = done
	return nil
}

func (lock *threadWakeLock) Release() error {
	lock.mu.Lock()
	release, done := lock.release, lock.done
	lock.release = nil
	lock.done = nil
	lock.mu.Unlock()
	if release == nil {
		return nil
	}
	close(release)
	<-done
	return nil
}
