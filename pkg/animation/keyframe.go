package animation

import (
	"time"

	"github.com/tanema/gween"

	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/graphics"
)

// KeyframeDriver animates the keyframe layer of one property on one view.
type KeyframeDriver[T any] struct {
	view     core.View
	property *core.CssAnimationProperty[T]
	tween    Tween[T]
	progress *gween.Tween
	ticker   *Ticker
	last     time.Duration
	started  bool
	done     bool
	// instant drivers have no duration and jump to the end value.
	instant bool

	// OnDone is called once when the driver reaches the end value.
	OnDone func()
}

// Animate creates a driver that moves property on view along tw over
// duration. A nil curve is linear. A duration of zero or less jumps
// straight to the end value on Start or the first Update.
func Animate[T any](view core.View, property *core.CssAnimationProperty[T], tw Tween[T], duration time.Duration, curve Curve) *KeyframeDriver[T] {
	if curve == nil {
		curve = Linear
	}
	if duration <= 0 {
		return &KeyframeDriver[T]{view: view, property: property, tween: tw, instant: true}
	}
	return &KeyframeDriver[T]{
		view:     view,
		property: property,
		tween:    tw,
		progress: gween.New(0, 1, float32(duration.Seconds()), curve),
	}
}

// AnimateFloat64 animates a float64 property from begin to end.
func AnimateFloat64(view core.View, property *core.CssAnimationProperty[float64], begin, end float64, duration time.Duration, curve Curve) *KeyframeDriver[float64] {
	return Animate(view, property, TweenFloat64(begin, end), duration, curve)
}

// AnimateColor animates a color property from begin to end.
func AnimateColor(view core.View, property *core.CssAnimationProperty[graphics.Color], begin, end graphics.Color, duration time.Duration, curve Curve) *KeyframeDriver[graphics.Color] {
	return Animate(view, property, TweenColor(begin, end), duration, curve)
}

// AnimateTo animates property from its current resolved value to end.
func AnimateTo[T any](view core.View, property *core.CssAnimationProperty[T], end T, lerp func(a, b T, t float64) T, duration time.Duration, curve Curve) *KeyframeDriver[T] {
	tw := Tween[T]{Begin: property.Get(view), End: end, Lerp: lerp}
	return Animate(view, property, tw, duration, curve)
}

// Start writes the begin value and runs the driver on a ticker.
func (d *KeyframeDriver[T]) Start() {
	if d.done {
		return
	}
	if d.instant {
		d.apply(1)
		d.finish()
		return
	}
	d.apply(0)
	d.ticker = NewTicker(func(elapsed time.Duration) {
		dt := elapsed - d.last
		d.last = elapsed
		d.Update(dt)
	})
	d.ticker.Start()
}

// Update advances the driver by dt and writes the eased value to the
// keyframe layer. It reports whether the driver has finished. The end
// value stays in place until Stop.
func (d *KeyframeDriver[T]) Update(dt time.Duration) bool {
	if d.done {
		return true
	}
	if d.instant {
		d.apply(1)
		d.finish()
		return true
	}
	progress, finished := d.progress.Update(float32(dt.Seconds()))
	d.apply(float64(progress))
	if finished {
		d.finish()
	}
	return d.done
}

// Stop halts the driver and clears the keyframe layer.
func (d *KeyframeDriver[T]) Stop() {
	if d.ticker != nil {
		d.ticker.Stop()
	}
	d.done = true
	if d.started {
		d.property.ClearKeyframe(d.view)
		d.started = false
	}
}

// Done reports whether the driver has finished or was stopped.
func (d *KeyframeDriver[T]) Done() bool { return d.done }

func (d *KeyframeDriver[T]) apply(progress float64) {
	d.started = true
	d.property.SetKeyframe(d.view, d.tween.Evaluate(progress))
}

func (d *KeyframeDriver[T]) finish() {
	d.done = true
	if d.ticker != nil {
		d.ticker.Stop()
	}
	if d.OnDone != nil {
		d.OnDone()
	}
}
