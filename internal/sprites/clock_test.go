package sprites

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameGateSkipsEarlyFrames(t *testing.T) {
	g := NewFrameGate(60, 0)

	_, ok := g.Tick(10)
	assert.False(t, ok)

	scale, ok := g.Tick(1000.0 / 60)
	assert.True(t, ok)
	assert.InDelta(t, 1, scale, 1e-9)
}

func TestFrameGateCarriesRemainder(t *testing.T) {
	g := NewFrameGate(60, 0)
	interval := 1000.0 / 60

	scale, ok := g.Tick(interval * 2.5)
	assert.True(t, ok)
	assert.InDelta(t, 2.5, scale, 1e-9)

	// Half an interval was carried over.
	_, ok = g.Tick(interval * 2.9)
	assert.False(t, ok)
	scale, ok = g.Tick(interval * 3.2)
	assert.True(t, ok)
	assert.InDelta(t, 1.2, scale, 1e-9)
}

func TestFrameGateDefaultsFPS(t *testing.T) {
	g := NewFrameGate(0, 0)

	assert.InDelta(t, 1000.0/FPS, g.Interval, 1e-9)
}

func TestDebouncerCoalescesCalls(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()
	time.Sleep(30 * time.Millisecond)

	assert.Zero(t, calls.Load())
}
