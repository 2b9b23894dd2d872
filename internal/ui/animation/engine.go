// Package animation drives short timed visual sequences, such as the
// background flash shown when the workout changes phase.
package animation

import (
	"context"
	"image/color"
	"sync"
	"time"
)

// Config contains flash timing values.
type Config struct {
	Pulses int
	On     time.Duration
	Off    time.Duration
}

// DefaultConfig returns the flash used on phase changes.
func DefaultConfig() Config {
	return Config{
		Pulses: 2,
		On:     180 * time.Millisecond,
		Off:    120 * time.Millisecond,
	}
}

// Engine runs one sequence at a time; starting a new one cancels the
// previous sequence.
type Engine struct {
	mu     sync.Mutex
	config Config
	paint  func(color.Color)
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an engine that reports every frame through paint. paint is
// called from the engine goroutine.
func New(config Config, paint func(color.Color)) *Engine {
	return &Engine{config: config, paint: paint}
}

// Flash alternates highlight and base, then settles on base.
func (engine *Engine) Flash(ctx context.Context, highlight, base color.Color) {
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.paint(base)
		for i := 0; i < engine.config.Pulses; i++ {
			engine.paint(highlight)
			if !sleepWithContext(runCtx, engine.config.On) {
				return
			}
			engine.paint(base)
			if !sleepWithContext(runCtx, engine.config.Off) {
				return
			}
		}
	})
}

// Stop cancels the running sequence and waits for it to settle.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (engine *Engine) start(ctx context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
