// Package session owns one interval workout: the engine state, the
// one-second tick driver, the five user commands, event fan-out to
// observers and the display wake lock.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"aerialtimer/internal/core/interval"
	"aerialtimer/internal/core/model"
)

// ErrConfigLocked is returned when the configuration is edited while the
// session is counting down.
var ErrConfigLocked = errors.New("configuration locked while the timer is running")

// Options contains runtime options for a Session.
type Options struct {
	// TickInterval is the length of one engine second.
	TickInterval time.Duration
	// Now is the clock used to measure elapsed time between driver ticks.
	Now    func() time.Time
	Logger *slog.Logger
}

// Session is the single owner of a TimerState. All mutation flows through
// the command methods or the tick driver.
type Session struct {
	mu      sync.Mutex
	config  model.TimerConfig
	options Options
	log     *slog.Logger
	state   interval.State
	events  []chan Event
	wake    wakeGuard
	closed  bool
	// hidden is set while the app is in the background; the lock is not
	// taken again until Foreground.
	hidden bool

	// driverStop identifies the live tick driver; ticks from any other
	// driver are ignored.
	driverStop chan struct{}
	lastTick   time.Time
	carry      time.Duration
}

// New creates a session in the prepare phase for config.
func New(config model.TimerConfig, options Options) *Session {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	config = config.Normalize()

	return &Session{
		config:  config,
		options: options,
		log:     options.Logger.With("component", "session"),
		state:   interval.NewState(config),
		wake:    wakeGuard{lock: NoopWakeLock{}},
	}
}

// SetWakeLock injects the platform wake lock.
func (session *Session) SetWakeLock(lock WakeLock) {
	if lock == nil {
		lock = NoopWakeLock{}
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.wake.release(); err != nil {
		session.log.Warn("release wake lock", "error", err)
	}
	session.wake = wakeGuard{lock: lock}
	session.syncWakeLocked(session.options.Now())
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		close(ch)
		return ch
	}
	session.events = append(session.events, ch)
	return ch
}

// State returns a snapshot of the current state.
func (session *Session) State() interval.State {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state
}

// Config returns the configuration the session runs with.
func (session *Session) Config() model.TimerConfig {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.config
}

// CanEditConfig reports whether UpdateConfig would be accepted.
func (session *Session) CanEditConfig() bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	return !session.state.Active()
}

// Start begins or continues the countdown. Starting a finished session does
// nothing; call Reset first.
func (session *Session) Start() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}
	previous := session.state
	next := interval.Start(previous, session.config)
	if next == previous {
		return
	}
	now := session.options.Now()
	session.state = next
	session.afterCommandLocked(previous, now)
}

// Pause suspends the countdown without touching the counters.
func (session *Session) Pause() {
	session.apply(interval.Pause)
}

// Resume continues a paused countdown from the exact remaining time.
func (session *Session) Resume() {
	session.apply(interval.Resume)
}

// Skip ends the current phase immediately.
func (session *Session) Skip() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}
	previous := session.state
	next := interval.Skip(previous, session.config)
	if next == previous {
		return
	}
	now := session.options.Now()
	session.state = next
	session.afterCommandLocked(previous, now)
}

// Reset stops the driver and returns to the prepare phase.
func (session *Session) Reset() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}
	previous := session.state
	now := session.options.Now()
	session.stopDriverLocked()
	session.state = interval.Reset(session.config)
	session.emitLocked(Event{
		Type:       EventStatus,
		State:      session.state,
		Previous:   previous.Phase,
		WasRunning: previous.IsRunning,
		At:         now,
	})
	session.syncWakeLocked(now)
}

// UpdateConfig replaces the configuration and reinitializes the state. It
// is refused while the countdown is active.
func (session *Session) UpdateConfig(config model.TimerConfig) error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state.Active() {
		return ErrConfigLocked
	}
	previous := session.state
	now := session.options.Now()
	session.stopDriverLocked()
	session.config = config.Normalize()
	session.state = interval.NewState(session.config)
	session.emitLocked(Event{
		Type:       EventConfig,
		State:      session.state,
		Previous:   previous.Phase,
		WasRunning: previous.IsRunning,
		At:         now,
	})
	session.syncWakeLocked(now)
	return nil
}

// Advance applies whole seconds immediately, as if the driver had ticked.
func (session *Session) Advance(seconds int) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}
	session.advanceLocked(seconds, session.options.Now(), false)
}

// Foreground re-acquires the wake lock when the app becomes visible again
// during an active countdown.
func (session *Session) Foreground() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.hidden = false
	session.syncWakeLocked(session.options.Now())
}

// Background releases the wake lock while the app is hidden. The
// countdown keeps running.
func (session *Session) Background() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.hidden = true
	if err := session.wake.release(); err != nil {
		session.log.Warn("release wake lock", "error", err)
	}
}

// Close stops the driver, releases the wake lock and closes observers.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	session.stopDriverLocked()
	if err := session.wake.release(); err != nil {
		session.log.Warn("release wake lock", "error", err)
	}
	events := session.events
	session.events = nil
	session.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (session *Session) apply(command func(interval.State) interval.State) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}
	previous := session.state
	next := command(previous)
	if next == previous {
		return
	}
	session.state = next
	session.afterCommandLocked(previous, session.options.Now())
}

func (session *Session) afterCommandLocked(previous interval.State, now time.Time) {
	current := session.state
	switch {
	case current.IsRunning && session.driverStop == nil:
		session.startDriverLocked(now)
	case !current.IsRunning:
		session.stopDriverLocked()
	}
	if current.Active() && !(previous.Active() && previous.Phase == current.Phase) {
		// A resumed or freshly entered phase gets a full first second.
		session.lastTick = now
		session.carry = 0
	}

	eventType := EventStatus
	if previous.Phase != current.Phase {
		eventType = EventPhaseChange
	}
	session.emitLocked(Event{
		Type:       eventType,
		State:      current,
		Previous:   previous.Phase,
		WasRunning: previous.IsRunning,
		At:         now,
	})
	if current.Finished() && previous.IsRunning {
		session.log.Info("workout finished", "preset", session.config.PresetName)
	}
	session.syncWakeLocked(now)
}

func (session *Session) startDriverLocked(now time.Time) {
	stop := make(chan struct{})
	session.driverStop = stop
	session.lastTick = now
	session.carry = 0
	go session.run(stop)
}

func (session *Session) stopDriverLocked() {
	if session.driverStop == nil {
		return
	}
	close(session.driverStop)
	session.driverStop = nil
	session.carry = 0
}

func (session *Session) run(stop chan struct{}) {
	ticker := time.NewTicker(session.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			session.tick(stop, session.options.Now())
		}
	}
}

// tick converts the elapsed time since the previous tick into whole engine
// seconds, carrying the remainder, so a late driver catches up instead of
// losing time.
func (session *Session) tick(stop chan struct{}, now time.Time) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || stop == nil || stop != session.driverStop {
		return
	}
	if !session.state.Active() {
		session.lastTick = now
		session.carry = 0
		return
	}

	elapsed := now.Sub(session.lastTick) + session.carry
	session.lastTick = now
	if elapsed <= 0 {
		session.carry = 0
		return
	}
	whole := int(elapsed / session.options.TickInterval)
	session.carry = elapsed - time.Duration(whole)*session.options.TickInterval
	session.advanceLocked(whole, now, true)
}

// advanceLocked applies seconds one at a time. When late is set, every
// event but the last one is marked as catch-up.
func (session *Session) advanceLocked(seconds int, now time.Time, late bool) {
	for i := 0; i < seconds && session.state.Active(); i++ {
		previous := session.state
		session.state = interval.Tick(previous, session.config)

		eventType := EventTick
		if previous.Phase != session.state.Phase {
			eventType = EventPhaseChange
		}
		session.emitLocked(Event{
			Type:       eventType,
			State:      session.state,
			Previous:   previous.Phase,
			WasRunning: previous.IsRunning,
			CatchUp:    late && i < seconds-1,
			At:         now,
		})
		if session.state.Finished() {
			session.log.Info("workout finished", "preset", session.config.PresetName)
		}
	}
	if !session.state.IsRunning {
		session.stopDriverLocked()
	}
	session.syncWakeLocked(now)
}

func (session *Session) syncWakeLocked(now time.Time) {
	err := session.wake.sync(session.state.Active() && !session.hidden)
	if err == nil {
		return
	}
	session.log.Warn("wake lock", "error", err)
	session.emitLocked(Event{
		Type:    EventWakeLockError,
		State:   session.state,
		Message: err.Error(),
		At:      now,
	})
}

func (session *Session) emitLocked(event Event) {
	for _, ch := range session.events {
		select {
		case ch <- event:
		default:
		}
	}
}
