package animation

// Defaults applied by [New].
const (
	// DefaultDuration is the forward duration of a fresh descriptor, in
	// milliseconds.
	DefaultDuration = 500
	// DefaultEndValue is the upper bound of the default value range.
	DefaultEndValue = 100
)

// RepeatInfinite makes an animation repeat until it is cancelled.
const RepeatInfinite uint16 = 0xFFFF

// maxDuration caps durations derived from a traversal speed.
const maxDuration = 65535

// ApplyFunc pushes a freshly interpolated value into the target. The
// scheduler never interprets the target beyond identity comparison; what
// the value means is entirely up to the callback.
type ApplyFunc func(target any, value int32)

// ReadFunc reads the target's current value. When set, the animation's
// start and end values are offset by the result at the first-apply moment,
// turning the configured range into a delta relative to wherever the
// target already is.
type ReadFunc func(target any) int32

// Callback is a lifecycle hook. OnStart receives the live record and may
// adjust it; OnReady receives a detached copy of the final state.
type Callback func(a *Animation)

// Animation describes one scheduled interpolation. Prepare a descriptor
// with [New], customize the exported fields, and submit it by value to
// [Scheduler.Start]; the scheduler copies it into an owned slot and the
// original is not retained.
//
// Target must be comparable (typically a pointer). It is borrowed, never
// owned: the scheduler performs no liveness tracking, and a target that
// outlives its animations is the caller's contract to keep.
type Animation struct {
	// Target identifies the object being animated. Cancellation and
	// duplicate suppression match on (Target, Apply).
	Target any

	// Apply pushes interpolated values; optional. A record without Apply
	// exists only for its lifecycle callbacks.
	Apply ApplyFunc

	// Read captures the target's current value at the first-apply moment;
	// optional. See [ReadFunc].
	Read ReadFunc

	// StartValue and EndValue bound the interpolation. They are swapped
	// while the reverse (playback) leg runs.
	StartValue int32
	EndValue   int32

	// Duration is the forward time window in milliseconds. While the
	// reverse leg runs it temporarily holds PlaybackDuration; the forward
	// value is preserved internally.
	Duration int32

	// Delay postpones the first tick.
	Delay int32

	// RepeatCount is the number of forward cycles left. [RepeatInfinite]
	// repeats forever; zero is the terminal condition.
	RepeatCount uint16

	// RepeatDelay pauses before each fresh forward cycle.
	RepeatDelay int32

	// PlaybackDelay pauses before the reverse leg starts.
	PlaybackDelay int32

	// PlaybackDuration is the length of the reverse leg. Zero disables
	// playback entirely.
	PlaybackDuration int32

	// EarlyApply pushes StartValue to the target at Start instead of
	// waiting for the first tick.
	EarlyApply bool

	// Path selects the interpolation curve. The zero value is [Linear].
	Path Path

	// OnStart fires at the beginning of every cycle, after any pending
	// delay elapses.
	OnStart Callback

	// OnReady fires exactly once, when the record is terminally deleted.
	// It receives a copy already detached from the registry, so it may
	// start or cancel animations freely, including for the same target.
	OnReady Callback

	// Runtime state, owned by the scheduler.
	elapsed      int32 // negative while a delay is pending
	current      int32 // last value pushed through Apply
	origDuration int32 // forward duration preserved across playback
	reversing    bool  // reverse leg active
	parity       bool  // run-round bit, at most one advance per frame
}

// New returns a descriptor with the library defaults: 500 ms duration,
// value range [0, 100], linear path, one repetition, early apply enabled.
func New() Animation {
	return Animation{
		Duration:    DefaultDuration,
		EndValue:    DefaultEndValue,
		RepeatCount: 1,
		EarlyApply:  true,
	}
}

// Elapsed returns the current position inside the active cycle, in
// milliseconds. It is negative while a delay is pending and clamped to
// [0, Duration] while running.
func (a *Animation) Elapsed() int32 { return a.elapsed }

// CurrentValue returns the last value pushed through Apply.
func (a *Animation) CurrentValue() int32 { return a.current }

// Reversing reports whether the reverse (playback) leg is active.
func (a *Animation) Reversing() bool { return a.reversing }

// SpeedToDuration converts a traversal rate in units per second into the
// duration needed to cross the given value range, in milliseconds. The
// result is capped at 65535 and floored to 1 so a degenerate combination
// never produces a zero-duration animation.
func SpeedToDuration(speed uint32, start, end int32) int32 {
	d := uint32(end - start)
	if start > end {
		d = uint32(start - end)
	}

	if speed == 0 {
		return maxDuration
	}
	t := (d * 1000) / speed
	if t > maxDuration {
		t = maxDuration
	}
	if t == 0 {
		t = 1
	}
	return int32(t)
}
