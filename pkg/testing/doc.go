// Package testing provides deterministic test doubles for Motive.
//
// # Controlling Time
//
// Inject a [FakeClock] into a scheduler and advance it by hand:
//
//	clock := motivetest.NewFakeClock()
//	sched := animation.NewScheduler(animation.WithClock(clock))
//
//	sched.Start(a)
//	clock.Advance(250)
//	sched.Update()
//
// # Recording Values
//
// A [ValueRecorder] captures everything an animation pushes:
//
//	rec := motivetest.NewValueRecorder()
//	a.Apply = rec.Apply
//	// ... run the animation ...
//	values := rec.Values()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import motivetest "github.com/go-motive/motive/pkg/testing"
package testing
