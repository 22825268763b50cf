package animation

import (
	"github.com/go-drift/cascade/pkg/graphics"
	"github.com/go-drift/cascade/pkg/layout"
)

// Tween interpolates between Begin and End values based on animation progress.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp interpolates between Begin and End at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t. Progress outside [0, 1]
// is passed through so overshooting curves keep their shape.
func (tw Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		if t < 1 {
			return tw.Begin
		}
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpLength interpolates lengths of the same unit. Mixed units jump to
// the end value at the halfway point.
func LerpLength(a, b layout.Length, t float64) layout.Length {
	if a.Unit != b.Unit {
		if t < 0.5 {
			return a
		}
		return b
	}
	return layout.Length{Value: LerpFloat64(a.Value, b.Value, t), Unit: a.Unit}
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) Tween[float64] {
	return Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenColor creates a tween for Color values.
func TweenColor(begin, end graphics.Color) Tween[graphics.Color] {
	return Tween[graphics.Color]{Begin: begin, End: end, Lerp: graphics.Lerp}
}

// TweenLength creates a tween for Length values.
func TweenLength(begin, end layout.Length) Tween[layout.Length] {
	return Tween[layout.Length]{Begin: begin, End: end, Lerp: LerpLength}
}
