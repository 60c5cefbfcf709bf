// Package animation provides a cooperative, tick-driven scheduler for
// fixed-point value animations.
//
// # Core Components
//
// The scheduler advances a set of independently timed interpolations each
// frame and pushes the results into arbitrary targets through callbacks:
//
//   - [Animation]: one interpolation task: a target, a value range, timing
//     parameters, a [Path], and lifecycle callbacks.
//
//   - [Scheduler]: owns the registry of live records and the per-frame
//     update loop. Construct one per independent animation domain; there is
//     no package-level singleton.
//
//   - [Path]: fixed-point easing curves ([Linear], [EaseIn], [Bounce], ...)
//     plus a [Custom] extension point.
//
// # Basic Usage
//
// Prepare a descriptor, submit it, and tick the scheduler once per frame:
//
//	sched := animation.NewScheduler()
//
//	a := animation.New()
//	a.Target = &sprite
//	a.Apply = func(target any, value int32) {
//	    target.(*Sprite).X = value
//	}
//	a.StartValue, a.EndValue = 0, 120
//	a.Path = animation.EaseOut
//	sched.Start(a)
//
//	// In the frame loop:
//	sched.Update()
//
// The [github.com/go-motive/motive/pkg/driver] package provides a ready-made
// frame pump for hosts without a loop of their own.
//
// # Reentrancy
//
// The scheduler is strictly single-threaded. Callbacks run synchronously
// inside [Scheduler.Update] and may freely start or cancel animations,
// including the one being processed. The update loop detects registry
// mutation and restarts from the front; a per-record run-round bit
// guarantees every record is advanced at most once per frame regardless of
// how often iteration restarts.
package animation

import (
	goerrors "errors"
	"fmt"
	"reflect"

	"github.com/go-motive/motive/pkg/errors"
)

// ErrRegistryFull is the underlying error of the [errors.KindCapacity]
// failure returned by [Scheduler.Start] when the arena is exhausted.
var ErrRegistryFull = goerrors.New("animation registry full")

// FrameReport summarizes the most recent update pass.
type FrameReport struct {
	// Advanced is the elapsed time the pass distributed, in milliseconds.
	Advanced int32
	// Visited counts records processed this pass.
	Visited int
	// Applied counts values actually pushed (after change-suppression).
	Applied int
	// Completed counts terminally deleted records.
	Completed int
	// Restarted counts repeat and playback transitions.
	Restarted int
}

// Scheduler owns an animation registry and drives it frame by frame. Not
// safe for concurrent use: all access must come from one goroutine, or be
// serialized externally (see the driver package).
type Scheduler struct {
	reg   registry
	clock Clock

	lastRun     uint32
	runRound    bool
	listChanged bool
	inUpdate    bool

	activity func(active bool)
	report   FrameReport
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock injects the time source. Defaults to [SystemClock].
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithCapacity sets the registry arena size. Defaults to
// [DefaultCapacity]. The arena never grows: once full, Start refuses new
// animations until existing ones finish.
func WithCapacity(n int) Option {
	return func(s *Scheduler) {
		s.reg = newRegistry(n)
	}
}

// NewScheduler creates an empty scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		reg:   newRegistry(DefaultCapacity),
		clock: SystemClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastRun = s.clock.Ticks()
	return s
}

// SetActivityFunc registers the membership signal: fn is invoked on every
// registry change with whether any record remains. Hosts use it to pause
// periodic invocation while the registry is empty. The signal is an
// optimization, never a correctness requirement.
func (s *Scheduler) SetActivityFunc(fn func(active bool)) {
	s.activity = fn
}

// Start submits a descriptor. The descriptor is copied into an owned slot;
// the caller's value is not retained. Any existing record with the same
// (Target, Apply) pair is removed first, so at most one animation drives a
// given pair at a time. Records submitted from inside a callback are not
// advanced until the next frame.
//
// Returns a capacity error when the arena is exhausted; the registry is
// left unchanged and existing animations keep running.
func (s *Scheduler) Start(a Animation) error {
	if a.Apply != nil {
		s.Cancel(a.Target, a.Apply)
	}

	// An empty registry means the host may have paused updates, making the
	// last-run timestamp stale. Reset it so the idle gap is not counted.
	if s.reg.count == 0 {
		s.lastRun = s.clock.Ticks()
	}

	a.origDuration = a.Duration
	a.elapsed = -a.Delay
	a.current = 0
	a.reversing = false
	a.parity = s.runRound

	idx, ok := s.reg.insert(a)
	if !ok {
		return &errors.MotiveError{
			Op:     "animation.Scheduler.Start",
			Kind:   errors.KindCapacity,
			Err:    ErrRegistryFull,
			Target: targetName(a.Target),
		}
	}

	if a.EarlyApply {
		rec := &s.reg.slots[idx].anim
		if rec.Read != nil {
			ofs := rec.Read(rec.Target)
			rec.StartValue += ofs
			rec.EndValue += ofs
		}
		if rec.Apply != nil && rec.Target != nil {
			rec.Apply(rec.Target, rec.StartValue)
		}
	}

	s.markChanged()
	return nil
}

// Cancel removes every record matching the (target, apply) pair. A nil
// apply is the wildcard: all records for the target are removed. Returns
// false when nothing matched; cancelling an absent pair is a no-op.
func (s *Scheduler) Cancel(target any, apply ApplyFunc) bool {
	key := funcKey(apply)
	removed := false

	idx := s.reg.head
	for idx != none {
		next := s.reg.slots[idx].next
		a := &s.reg.slots[idx].anim
		if a.Target == target && (key == 0 || funcKey(a.Apply) == key) {
			s.reg.detach(idx)
			s.listChanged = true
			removed = true
		}
		idx = next
	}
	if removed {
		// Signal once after the sweep: an activity callback may mutate the
		// registry, which would invalidate the saved next index.
		s.signalActivity()
	}
	return removed
}

// CancelAll removes every record.
func (s *Scheduler) CancelAll() {
	s.reg.clear()
	s.markChanged()
}

// Get returns a copy of the record matching the exact (target, apply)
// pair. A nil apply matches only records whose Apply is nil.
func (s *Scheduler) Get(target any, apply ApplyFunc) (Animation, bool) {
	key := funcKey(apply)
	for idx := s.reg.head; idx != none; idx = s.reg.slots[idx].next {
		a := &s.reg.slots[idx].anim
		if a.Target == target && funcKey(a.Apply) == key {
			return *a, true
		}
	}
	return Animation{}, false
}

// Count returns the number of live records.
func (s *Scheduler) Count() int { return s.reg.count }

// Each visits live records front-to-back (most recently started first)
// until fn returns false. The registry must not be modified during the
// walk; use callbacks or Cancel for that.
func (s *Scheduler) Each(fn func(a *Animation) bool) {
	for idx := s.reg.head; idx != none; idx = s.reg.slots[idx].next {
		if !fn(&s.reg.slots[idx].anim) {
			return
		}
	}
}

// LastFrame returns the report of the most recent update pass.
func (s *Scheduler) LastFrame() FrameReport { return s.report }

// Update advances every live record by the real time elapsed since the
// previous pass. The host calls it once per frame. Reentrant calls (from
// inside a callback) are no-ops, so callbacks cannot recurse the loop.
func (s *Scheduler) Update() {
	if s.inUpdate {
		return
	}
	s.inUpdate = true
	defer func() { s.inUpdate = false }()

	elapsed := int32(elapsedSince(s.clock.Ticks(), s.lastRun))

	// Flip the run round: a record whose parity already matches has been
	// advanced this frame and is skipped on restarts.
	s.runRound = !s.runRound

	var rep FrameReport
	rep.Advanced = elapsed

	idx := s.reg.head
	for idx != none {
		// Cleared before each record so a mutation by its callbacks is
		// detected right after processing it.
		s.listChanged = false

		if s.reg.slots[idx].anim.parity != s.runRound {
			s.reg.slots[idx].anim.parity = s.runRound
			rep.Visited++
			s.step(idx, elapsed, &rep)
		}

		if s.listChanged {
			// The list changed under us; the saved position may be stale
			// or freed. Restart from the front; parity keeps already
			// advanced records from running twice.
			idx = s.reg.head
		} else {
			idx = s.reg.slots[idx].next
		}
	}

	// Re-sample so time spent inside callbacks is not charged to the next
	// frame.
	s.lastRun = s.clock.Ticks()
	s.report = rep
}

// RefreshNow forces an immediate update pass. Useful when the host cannot
// tick periodically for a while (a blocking operation, a modal loop) and
// wants animations caught up before continuing.
func (s *Scheduler) RefreshNow() {
	s.Update()
}

// step advances one record. A panic escaping any of the record's callbacks
// is recovered and reported, and the offending record is detached; the
// update loop itself never fails.
func (s *Scheduler) step(idx int32, elapsed int32, rep *FrameReport) {
	gen := s.reg.slots[idx].gen
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "animation.Scheduler.Update",
				Value:      r,
				StackTrace: errors.CaptureStack(),
			})
			if s.reg.alive(idx, gen) {
				s.reg.detach(idx)
				s.markChanged()
			}
		}
	}()

	a := &s.reg.slots[idx].anim

	// Crossing from delay into the running window is the first real tick
	// of this cycle: capture the deferred read-offset and fire OnStart.
	if a.elapsed <= 0 && a.elapsed+elapsed >= 0 {
		if !a.EarlyApply && a.Read != nil {
			ofs := a.Read(a.Target)
			if !s.reg.alive(idx, gen) {
				return
			}
			a.StartValue += ofs
			a.EndValue += ofs
		}
		if a.OnStart != nil {
			a.OnStart(a)
			if !s.reg.alive(idx, gen) {
				return
			}
		}
	}

	a.elapsed += elapsed
	if a.elapsed < 0 {
		return
	}
	if a.elapsed > a.Duration {
		a.elapsed = a.Duration
	}

	value := a.Path.Evaluate(a)
	if value != a.current {
		a.current = value
		if a.Apply != nil {
			a.Apply(a.Target, value)
			rep.Applied++
			if !s.reg.alive(idx, gen) {
				return
			}
		}
	}

	if a.elapsed >= a.Duration {
		s.finish(idx, rep)
	}
}

// finish runs the ready/repeat state machine for a record whose elapsed
// time reached its duration.
func (s *Scheduler) finish(idx int32, rep *FrameReport) {
	a := &s.reg.slots[idx].anim

	// A completed forward leg consumes one repetition.
	if !a.reversing && a.RepeatCount > 0 && a.RepeatCount != RepeatInfinite {
		a.RepeatCount--
	}

	// Terminal when no forward cycles remain and no reverse leg is pending:
	// either playback is disabled, or the reverse leg just finished.
	if a.RepeatCount == 0 && (a.PlaybackDuration == 0 || a.reversing) {
		// Detach before the callback so OnReady observes a registry
		// without this record and may start a replacement for the same
		// target without tripping duplicate suppression.
		final := *a
		s.reg.detach(idx)
		s.markChanged()
		rep.Completed++

		if final.OnReady != nil {
			final.OnReady(&final)
		}
		return
	}

	// More cycles remain: rewind, honoring the pause that applies.
	a.elapsed = -a.RepeatDelay
	if a.PlaybackDuration != 0 {
		if !a.reversing {
			a.elapsed = -a.PlaybackDelay
		}
		a.reversing = !a.reversing
		a.StartValue, a.EndValue = a.EndValue, a.StartValue
		if a.reversing {
			a.Duration = a.PlaybackDuration
		} else {
			a.Duration = a.origDuration
		}
	}
	rep.Restarted++
}

// markChanged flags the registry mutation for the update loop and fires
// the host's activity signal.
func (s *Scheduler) markChanged() {
	s.listChanged = true
	s.signalActivity()
}

func (s *Scheduler) signalActivity() {
	if s.activity != nil {
		s.activity(s.reg.count > 0)
	}
}

// funcKey returns the code pointer identity of an apply callback. Two
// closures created from the same function literal share a key, mirroring
// function-pointer comparison.
func funcKey(fn ApplyFunc) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

func targetName(target any) string {
	if target == nil {
		return ""
	}
	return fmt.Sprintf("%T", target)
}
