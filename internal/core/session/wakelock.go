package session

import "errors"

// ErrWakeLockUnsupported indicates the platform cannot keep the display awake.
var ErrWakeLockUnsupported = errors.New("wake lock unsupported")

// WakeLock keeps the display from sleeping while a workout is active.
type WakeLock interface {
	Supported() bool
	Acquire() error
	Release() error
}

// HeldReporter is implemented by wake locks that can be lost without a
// Release, for example when a helper process dies.
type HeldReporter interface {
	Held() bool
}

// NoopWakeLock is used when no platform wake lock is available.
type NoopWakeLock struct{}

func (NoopWakeLock) Supported() bool { return false }

func (NoopWakeLock) Acquire() error { return ErrWakeLockUnsupported }

func (NoopWakeLock) Release() error { return nil }

// wakeGuard tracks whether the lock is currently held so acquire and
// release stay balanced.
type wakeGuard struct {
	lock WakeLock
	held bool
}

func (guard *wakeGuard) sync(active bool) error {
	if active {
		return guard.acquire()
	}
	return guard.release()
}

func (guard *wakeGuard) acquire() error {
	if guard.held {
		reporter, ok := guard.lock.(HeldReporter)
		if !ok || reporter.Held() {
			return nil
		}
		guard.held = false
	}
	if guard.lock == nil || !guard.lock.Supported() {
		return nil
	}
	if err := guard.lock.Acquire(); err != nil {
		if errors.Is(err, ErrWakeLockUnsupported) {
			return nil
		}
		return err
	}
	guard.held = true
	return nil
}

func (guard *wakeGuard) release() error {
	if !guard.held || guard.lock == nil {
		return nil
	}
	guard.held = false
	return guard.lock.Release()
}
