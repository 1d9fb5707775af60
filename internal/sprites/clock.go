package sprites

import (
	"math"
	"sync"
	"time"
)

// FrameGate caps updates at a fixed rate. Timestamps are milliseconds, as
// handed to requestAnimationFrame callbacks.
type FrameGate struct {
	Interval float64
	last     float64
}

// NewFrameGate starts a gate at now that opens fps times per second.
func NewFrameGate(fps, now float64) *FrameGate {
	if fps <= 0 {
		fps = FPS
	}
	return &FrameGate{Interval: 1000 / fps, last: now}
}

// Tick reports whether a frame is due at now and, if so, how many nominal
// frames elapsed. The leftover fraction of an interval carries over so the
// average rate holds.
func (g *FrameGate) Tick(now float64) (float64, bool) {
	dt := now - g.last
	if dt < g.Interval {
		return 0, false
	}
	g.last = now - math.Mod(dt, g.Interval)
	return dt / g.Interval, true
}

// Debouncer runs fn once calls have been quiet for wait.
type Debouncer struct {
	wait time.Duration
	fn   func()

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(wait time.Duration, fn func()) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fn)
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
