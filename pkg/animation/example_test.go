package animation_test

import (
	"fmt"

	"github.com/go-motive/motive/pkg/animation"
	motivetest "github.com/go-motive/motive/pkg/testing"
)

// This example animates a value from 0 to 100 over 100 ms, ticking the
// scheduler by hand on a fake clock.
func ExampleScheduler() {
	clock := motivetest.NewFakeClock()
	sched := animation.NewScheduler(animation.WithClock(clock))

	position := 0
	a := animation.New()
	a.Target = &position
	a.Apply = func(target any, value int32) {
		*(target.(*int)) = int(value)
		fmt.Println("x =", value)
	}
	a.Duration = 100
	a.OnReady = func(*animation.Animation) {
		fmt.Println("done")
	}
	sched.Start(a)

	for range 4 {
		clock.Advance(25)
		sched.Update()
	}

	// Output:
	// x = 0
	// x = 25
	// x = 50
	// x = 75
	// x = 100
	// done
}

// This example shows a forward leg followed by a reverse (playback) leg.
func ExampleScheduler_playback() {
	clock := motivetest.NewFakeClock()
	sched := animation.NewScheduler(animation.WithClock(clock))

	a := animation.New()
	a.Target = new(int)
	a.Apply = func(_ any, value int32) {
		fmt.Println(value)
	}
	a.Duration = 100
	a.PlaybackDuration = 100
	sched.Start(a)

	for range 4 {
		clock.Advance(50)
		sched.Update()
	}

	// Output:
	// 0
	// 50
	// 100
	// 50
	// 0
}

// This example installs a user-defined path.
func ExampleCustom() {
	clock := motivetest.NewFakeClock()
	sched := animation.NewScheduler(animation.WithClock(clock))

	// Holds the midpoint until the time window elapses, then snaps to the
	// end value.
	hold := animation.Custom(func(a *animation.Animation) int32 {
		if a.Elapsed() >= a.Duration {
			return a.EndValue
		}
		return (a.StartValue + a.EndValue) / 2
	})

	a := animation.New()
	a.Target = new(int)
	a.Apply = func(_ any, value int32) {
		fmt.Println(value)
	}
	a.Duration = 100
	a.Path = hold
	a.EarlyApply = false
	sched.Start(a)

	clock.Advance(50)
	sched.Update()
	clock.Advance(50)
	sched.Update()

	// Output:
	// 50
	// 100
}

// This example derives a duration from a traversal speed.
func ExampleSpeedToDuration() {
	ms := animation.SpeedToDuration(50, 0, 100)
	fmt.Println(ms, "ms")

	// Output:
	// 2000 ms
}
