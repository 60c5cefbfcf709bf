package testing

import "sync"

// fakeEpoch is a fixed, non-zero starting tick so tests exercise the
// arbitrary-epoch contract rather than starting from zero by accident.
const fakeEpoch uint32 = 100_000

// FakeClock provides controllable time for deterministic animation tests.
// It implements the scheduler's clock contract: monotonic milliseconds
// from an arbitrary epoch. All methods are safe for concurrent use.
type FakeClock struct {
	mu    sync.Mutex
	ticks uint32
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{ticks: fakeEpoch}
}

// Ticks returns the current fake tick count in milliseconds.
func (c *FakeClock) Ticks() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Advance moves the clock forward by ms milliseconds.
func (c *FakeClock) Advance(ms uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks += ms
}

// Set moves the clock to an exact tick count. Useful for wraparound tests
// that start near the top of the uint32 range.
func (c *FakeClock) Set(ticks uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = ticks
}
