// Package tween maps the scheduler's fixed-point output onto arbitrary Go
// values.
//
// The animation core interpolates int32 values. A [Tween] treats an
// animation running over the normalized 0..1024 range as a progress source
// and interpolates its own Begin/End values of any type: floats, colors,
// or anything with a Lerp function.
//
//	size := tween.Number(100.0, 200.0)
//	a := size.Animate(func(v float64) {
//	    box.Width = v
//	})
//	a.Path = animation.EaseOut
//	sched.Start(a)
package tween

import (
	"golang.org/x/exp/constraints"

	"github.com/go-motive/motive/pkg/animation"
)

// progressScale is the animation range a tween-driven record runs over,
// matching the path library's fixed-point resolution.
const progressScale = 1024

// Tween interpolates between Begin and End based on progress in [0, 1].
//
// Use the constructors ([Number], [Color]) for common types, or fill in a
// custom Lerp function for anything else.
type Tween[T any] struct {
	// Begin is the value at progress 0.
	Begin T
	// End is the value at progress 1.
	End T
	// Lerp interpolates between two values at progress t in [0, 1].
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at progress t (0.0 to 1.0).
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Bind adapts the tween into an animation apply callback. The driving
// animation must run over the 0..1024 range; each pushed value is treated
// as normalized progress and handed to apply as the tweened value.
func (tw *Tween[T]) Bind(apply func(T)) animation.ApplyFunc {
	return func(_ any, value int32) {
		apply(tw.Evaluate(float64(value) / progressScale))
	}
}

// Animate returns a ready-to-start descriptor driving this tween: the
// tween itself is the target, the value range is normalized progress, and
// every pushed value reaches apply as the tweened type. Customize timing
// and path on the result before starting it.
func (tw *Tween[T]) Animate(apply func(T)) animation.Animation {
	a := animation.New()
	a.Target = tw
	a.StartValue = 0
	a.EndValue = progressScale
	a.Apply = tw.Bind(apply)
	return a
}

// LerpNumber linearly interpolates between two numeric values.
func LerpNumber[T constraints.Integer | constraints.Float](a, b T, t float64) T {
	switch t {
	case 0:
		return a
	case 1:
		return b
	default:
		return T(float64(a) + float64(b-a)*t)
	}
}

// LerpColor linearly interpolates two ARGB colors channel by channel.
func LerpColor(a, b uint32, t float64) uint32 {
	lerp := func(shift uint) uint32 {
		ca := float64((a >> shift) & 0xFF)
		cb := float64((b >> shift) & 0xFF)
		return uint32(ca+(cb-ca)*t) & 0xFF
	}
	return lerp(24)<<24 | lerp(16)<<16 | lerp(8)<<8 | lerp(0)
}

// Number creates a tween for numeric values.
func Number[T constraints.Integer | constraints.Float](begin, end T) *Tween[T] {
	return &Tween[T]{
		Begin: begin,
		End:   end,
		Lerp:  LerpNumber[T],
	}
}

// Color creates a tween for ARGB colors.
func Color(begin, end uint32) *Tween[uint32] {
	return &Tween[uint32]{
		Begin: begin,
		End:   end,
		Lerp:  LerpColor,
	}
}
