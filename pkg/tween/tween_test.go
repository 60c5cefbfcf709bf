package tween_test

import (
	"fmt"
	"testing"

	"github.com/go-motive/motive/pkg/animation"
	motivetest "github.com/go-motive/motive/pkg/testing"
	"github.com/go-motive/motive/pkg/tween"
)

func TestNumberEndpoints(t *testing.T) {
	tw := tween.Number(100.0, 200.0)
	if got := tw.Evaluate(0); got != 100 {
		t.Errorf("Evaluate(0) = %v, want 100", got)
	}
	if got := tw.Evaluate(1); got != 200 {
		t.Errorf("Evaluate(1) = %v, want 200", got)
	}
	if got := tw.Evaluate(0.5); got != 150 {
		t.Errorf("Evaluate(0.5) = %v, want 150", got)
	}
}

func TestNumberInteger(t *testing.T) {
	tw := tween.Number(0, 10)
	if got := tw.Evaluate(0.5); got != 5 {
		t.Errorf("integer Evaluate(0.5) = %v, want 5", got)
	}
	// Exact endpoints even where float conversion would round.
	if got := tw.Evaluate(1); got != 10 {
		t.Errorf("integer Evaluate(1) = %v, want 10", got)
	}
}

func TestColor(t *testing.T) {
	tw := tween.Color(0xFF000000, 0xFFFFFFFF)
	if got := tw.Evaluate(0); got != 0xFF000000 {
		t.Errorf("Evaluate(0) = %08x", got)
	}
	if got := tw.Evaluate(1); got != 0xFFFFFFFF {
		t.Errorf("Evaluate(1) = %08x", got)
	}
	mid := tw.Evaluate(0.5)
	if mid>>24 != 0xFF {
		t.Errorf("alpha at 0.5 = %02x, want FF", mid>>24)
	}
	if r := (mid >> 16) & 0xFF; r < 0x7E || r > 0x80 {
		t.Errorf("red at 0.5 = %02x, want ~7F", r)
	}
}

func TestNilLerpReturnsEnd(t *testing.T) {
	tw := &tween.Tween[string]{Begin: "a", End: "b"}
	if got := tw.Evaluate(0.25); got != "b" {
		t.Errorf("Evaluate with nil Lerp = %q, want %q", got, "b")
	}
}

func TestAnimateDrivesTween(t *testing.T) {
	clock := motivetest.NewFakeClock()
	sched := animation.NewScheduler(animation.WithClock(clock))

	tw := tween.Number(0.0, 10.0)
	var got []float64
	a := tw.Animate(func(v float64) { got = append(got, v) })
	a.Duration = 100
	if err := sched.Start(a); err != nil {
		t.Fatal(err)
	}

	clock.Advance(50)
	sched.Update()
	clock.Advance(50)
	sched.Update()

	if len(got) == 0 {
		t.Fatal("no values delivered")
	}
	if last := got[len(got)-1]; last != 10 {
		t.Errorf("final tweened value = %v, want exactly 10", last)
	}

	// Duplicate suppression applies to the tween itself: restarting the
	// same tween replaces the running record.
	if err := sched.Start(a); err != nil {
		t.Fatal(err)
	}
	if err := sched.Start(a); err != nil {
		t.Fatal(err)
	}
	if sched.Count() != 1 {
		t.Errorf("Count after restart = %d, want 1", sched.Count())
	}
}

func ExampleTween() {
	opacity := tween.Number(0.0, 1.0)
	fmt.Printf("%.2f\n", opacity.Evaluate(0.5))

	// Output:
	// 0.50
}

func ExampleTween_customType() {
	type point struct{ X, Y float64 }

	path := &tween.Tween[point]{
		Begin: point{0, 0},
		End:   point{100, 200},
		Lerp: func(a, b point, t float64) point {
			return point{
				X: tween.LerpNumber(a.X, b.X, t),
				Y: tween.LerpNumber(a.Y, b.Y, t),
			}
		},
	}

	mid := path.Evaluate(0.5)
	fmt.Printf("(%.0f, %.0f)\n", mid.X, mid.Y)

	// Output:
	// (50, 100)
}
