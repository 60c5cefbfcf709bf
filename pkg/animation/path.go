package animation

// Paths shape an animation's progress over time using fixed-point
// arithmetic: elapsed time is remapped onto a 0..1024 axis, shaped by the
// curve, and scaled back onto the start/end value range. No floating point
// is involved, so results are exact and platform-independent.
//
// Built-in paths: [Linear], [EaseIn], [EaseOut], [EaseInOut], [Overshoot],
// [Bounce], [Step]. Use [Custom] with a [PathFunc] for anything else; the
// exported [Bezier3] evaluator covers most custom shapes.

// resolution is the fixed-point axis paths are evaluated on.
const (
	resolution = 1024
	resShift   = 10
)

// PathFunc computes the interpolated value for a custom path. It receives
// the live record and must derive the value from Elapsed, Duration,
// StartValue and EndValue. Implementations must be pure: evaluation at
// Elapsed >= Duration must return exactly EndValue.
type PathFunc func(a *Animation) int32

type pathKind int

const (
	pathLinear pathKind = iota
	pathEaseIn
	pathEaseOut
	pathEaseInOut
	pathOvershoot
	pathBounce
	pathStep
	pathCustom
)

// Path selects the interpolation curve of an animation. The zero value is
// [Linear]. Paths are value types and can be compared and copied freely
// (except [Custom] paths, which carry a function).
type Path struct {
	kind pathKind
	fn   PathFunc
}

// Built-in paths.
var (
	// Linear progresses proportionally with time.
	Linear = Path{kind: pathLinear}
	// EaseIn starts slowly and accelerates.
	EaseIn = Path{kind: pathEaseIn}
	// EaseOut starts quickly and decelerates.
	EaseOut = Path{kind: pathEaseOut}
	// EaseInOut starts and ends slowly with acceleration in the middle.
	EaseInOut = Path{kind: pathEaseInOut}
	// Overshoot passes the end value and settles back onto it.
	Overshoot = Path{kind: pathOvershoot}
	// Bounce hits the end value and bounces off it three times with
	// decaying amplitude.
	Bounce = Path{kind: pathBounce}
	// Step holds the start value for the whole duration, then snaps to the
	// end value.
	Step = Path{kind: pathStep}
)

// Custom wraps a user-supplied path function.
func Custom(fn PathFunc) Path {
	return Path{kind: pathCustom, fn: fn}
}

// String returns the path name for diagnostics.
func (p Path) String() string {
	switch p.kind {
	case pathLinear:
		return "linear"
	case pathEaseIn:
		return "ease-in"
	case pathEaseOut:
		return "ease-out"
	case pathEaseInOut:
		return "ease-in-out"
	case pathOvershoot:
		return "overshoot"
	case pathBounce:
		return "bounce"
	case pathStep:
		return "step"
	case pathCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Evaluate returns the interpolated value of a at its current elapsed time.
func (p Path) Evaluate(a *Animation) int32 {
	switch p.kind {
	case pathEaseIn:
		return shaped(a, Bezier3(progress(a), 0, 50, 100, 1024))
	case pathEaseOut:
		return shaped(a, Bezier3(progress(a), 0, 900, 950, 1024))
	case pathEaseInOut:
		return shaped(a, Bezier3(progress(a), 0, 50, 952, 1024))
	case pathOvershoot:
		return shaped(a, Bezier3(progress(a), 0, 1000, 1300, 1024))
	case pathBounce:
		return bounce(a)
	case pathStep:
		if a.elapsed >= a.Duration {
			return a.EndValue
		}
		return a.StartValue
	case pathCustom:
		if p.fn != nil {
			return p.fn(a)
		}
		fallthrough
	default:
		return shaped(a, progress(a))
	}
}

// Sample evaluates the path against a synthetic record: a value sweep from
// start to end over duration, frozen at the given elapsed time. Useful for
// previewing a curve without registering anything.
func (p Path) Sample(elapsed, duration, start, end int32) int32 {
	a := Animation{
		StartValue: start,
		EndValue:   end,
		Duration:   duration,
		elapsed:    elapsed,
	}
	return p.Evaluate(&a)
}

// progress remaps the record's elapsed time onto the 0..1024 axis.
func progress(a *Animation) int32 {
	return remap(a.elapsed, a.Duration)
}

// remap scales v from [0, d] onto [0, 1024], saturating at the bounds.
// A non-positive d counts as already complete.
func remap(v, d int32) int32 {
	if d <= 0 || v >= d {
		return resolution
	}
	if v <= 0 {
		return 0
	}
	return (v * resolution) / d
}

// shaped scales a 0..1024 step onto the record's value range.
func shaped(a *Animation, step int32) int32 {
	return a.StartValue + ((step * (a.EndValue - a.StartValue)) >> resShift)
}

// Bezier3 evaluates a cubic Bézier on the fixed-point axis. t runs 0..1024;
// u0..u3 are the control values. The result interpolates u0 at t=0 and u3
// at t=1024.
func Bezier3(t, u0, u1, u2, u3 int32) int32 {
	tRem := uint32(1024 - t)
	tRem2 := (tRem * tRem) >> 10
	tRem3 := (tRem2 * tRem) >> 10
	t2 := (uint32(t) * uint32(t)) >> 10
	t3 := (t2 * uint32(t)) >> 10

	v1 := (tRem3 * uint32(u0)) >> 10
	v2 := (3 * tRem2 * uint32(t) * uint32(u1)) >> 20
	v3 := (3 * tRem * t2 * uint32(u2)) >> 20
	v4 := (t3 * uint32(u3)) >> 10

	return int32(v1 + v2 + v3 + v4)
}

// bounce is a five-segment piecewise curve: one large fall, then two
// progressively smaller rebounds. Segment boundaries sit at fixed fractions
// of the normalized axis, each segment rescaled back onto 0..1024 and
// shaped through a decaying Bézier.
func bounce(a *Animation) int32 {
	t := progress(a)
	diff := a.EndValue - a.StartValue

	switch {
	case t < 408:
		// Fall to the end value.
		t = (t * 2500) >> 10
	case t < 614:
		// First bounce up.
		t -= 408
		t *= 5
		t = 1024 - t
		diff /= 20
	case t < 819:
		// Fall back.
		t -= 614
		t *= 5
		diff /= 20
	case t < 921:
		// Second, smaller bounce up.
		t -= 819
		t *= 10
		t = 1024 - t
		diff /= 40
	default:
		// Final fall.
		t -= 921
		t *= 10
		diff /= 40
	}

	if t > 1024 {
		t = 1024
	}
	step := Bezier3(t, 1024, 800, 500, 0)
	return a.EndValue - ((step * diff) >> resShift)
}
