// Package driver provides a host-side frame pump for the animation
// scheduler.
//
// The scheduler itself is single-threaded and clockless beyond its tick
// source; something has to call Update once per frame. Driver runs that
// loop on its own goroutine, serializes all scheduler access behind a
// mutex, and parks itself while the registry is empty so an idle program
// burns no CPU on animation frames.
//
//	sched := animation.NewScheduler()
//	drv := driver.New(sched, 16*time.Millisecond)
//	drv.Start()
//	defer drv.Stop()
//
//	drv.Do(func(s *animation.Scheduler) {
//	    s.Start(a)
//	})
//
// All outside access to the scheduler must go through [Driver.Do]; the
// callback runs under the same lock as the frame tick, so scheduler calls
// inside it need no further synchronization.
package driver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-motive/motive/pkg/animation"
)

// DefaultInterval is the frame interval used when New is given a
// non-positive one (~60 fps).
const DefaultInterval = 16 * time.Millisecond

// Frame describes one completed update pass, delivered to the observer
// registered with [Driver.SetFrameFunc].
type Frame struct {
	// Report is the scheduler's account of the pass.
	Report animation.FrameReport
	// Duration is the wall time the pass took, callbacks included.
	Duration time.Duration
	// Live is the registry count after the pass.
	Live int
}

// Driver ticks a scheduler at a fixed interval on its own goroutine.
type Driver struct {
	mu    sync.Mutex // serializes all scheduler access
	sched *animation.Scheduler

	interval time.Duration
	active   atomic.Bool
	wake     chan struct{}

	runMu   sync.Mutex // guards Start/Stop state
	stop    chan struct{}
	done    chan struct{}
	running bool

	frameMu   sync.Mutex
	frameFunc func(Frame)
}

// New wires a driver to the scheduler. The driver installs itself as the
// scheduler's activity listener; it parks while the registry is empty and
// wakes as soon as an animation is started.
func New(sched *animation.Scheduler, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d := &Driver{
		sched:    sched,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
	sched.SetActivityFunc(d.onActivity)
	d.active.Store(sched.Count() > 0)
	return d
}

// Start launches the frame loop. Starting a running driver is a no-op.
func (d *Driver) Start() {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.loop(d.stop, d.done)
}

// Stop halts the frame loop and waits for it to exit. Stopping a stopped
// driver is a no-op. Live animations are left in place and resume when the
// driver is started again.
func (d *Driver) Stop() {
	d.runMu.Lock()
	if !d.running {
		d.runMu.Unlock()
		return
	}
	d.running = false
	close(d.stop)
	done := d.done
	d.runMu.Unlock()
	<-done
}

// Do runs fn under the driver's lock. This is the only safe way to touch
// the scheduler while the driver is running; the TUI, inspector, and frame
// loop all share this one mutex.
//
// Do must not be called from inside an animation callback: callbacks
// already run under the lock and may call the scheduler directly.
func (d *Driver) Do(fn func(s *animation.Scheduler)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.sched)
}

// SetFrameFunc registers an observer invoked after every update pass, off
// the scheduler lock. Pass nil to remove it.
func (d *Driver) SetFrameFunc(fn func(Frame)) {
	d.frameMu.Lock()
	d.frameFunc = fn
	d.frameMu.Unlock()
}

// onActivity is the scheduler's membership signal. It runs under d.mu
// (membership only changes inside Do or the frame tick), so it must not
// lock; it only flips the flag and nudges the parked loop.
func (d *Driver) onActivity(active bool) {
	d.active.Store(active)
	if active {
		select {
		case d.wake <- struct{}{}:
		default:
		}
	}
}

func (d *Driver) loop(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if !d.active.Load() {
			// Registry empty: park until an animation is started.
			select {
			case <-d.wake:
				continue
			case <-stop:
				return
			}
		}

		select {
		case <-ticker.C:
			d.tick()
		case <-stop:
			return
		}
	}
}

func (d *Driver) tick() {
	start := time.Now()

	d.mu.Lock()
	d.sched.Update()
	frame := Frame{
		Report: d.sched.LastFrame(),
		Live:   d.sched.Count(),
	}
	d.mu.Unlock()

	frame.Duration = time.Since(start)

	d.frameMu.Lock()
	fn := d.frameFunc
	d.frameMu.Unlock()
	if fn != nil {
		fn(frame)
	}
}
