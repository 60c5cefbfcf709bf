package animation

import "time"

// Clock provides monotonic time for the scheduler, measured in milliseconds
// from an arbitrary epoch. Elapsed intervals are computed by uint32
// subtraction, so wraparound (every ~49.7 days) is handled transparently.
//
// The default implementation uses system time anchored at process start.
// Tests can inject [testing.FakeClock] via [WithClock] to control animation
// timing deterministically.
type Clock interface {
	Ticks() uint32
}

// systemClock reports milliseconds since process start.
type systemClock struct {
	epoch time.Time
}

func (c systemClock) Ticks() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

var sysClock Clock = systemClock{epoch: time.Now()}

// SystemClock returns the default monotonic clock.
func SystemClock() Clock { return sysClock }

// elapsedSince returns now-since in milliseconds, tolerating tick wraparound.
func elapsedSince(now, since uint32) uint32 {
	return now - since
}
