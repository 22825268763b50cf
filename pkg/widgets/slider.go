package widgets

import "github.com/go-drift/cascade/pkg/core"

// SliderClass is the class of Slider.
var SliderClass = core.NewClass("Slider", ViewClass)

var (
	MinValueProperty = core.NewProperty(core.PropertyOptions[float64]{
		Name:           "minValue",
		ValueConverter: core.ParseFloat,
		ValueChanged:   func(v *core.ViewBase, _, _ float64) { coerceSlider(v) },
	})
	MaxValueProperty = core.NewProperty(core.PropertyOptions[float64]{
		Name:           "maxValue",
		DefaultValue:   100,
		ValueConverter: core.ParseFloat,
		ValueChanged:   func(v *core.ViewBase, _, _ float64) { coerceSlider(v) },
	})
	// ValueProperty is clamped to [minValue, maxValue] whenever it or a
	// bound changes. The raw value is kept, so widening the range again
	// restores it.
	ValueProperty = core.NewCoercibleProperty(core.CoerciblePropertyOptions[float64]{
		PropertyOptions: core.PropertyOptions[float64]{
			Name:           "value",
			ValueConverter: core.ParseFloat,
		},
		CoerceValue: func(v *core.ViewBase, value float64) float64 {
			lo, hi := MinValueProperty.Get(v), MaxValueProperty.Get(v)
			if hi < lo {
				hi = lo
			}
			return min(max(value, lo), hi)
		},
	})
)

// coerceSlider is assigned in init; the bounds and ValueProperty refer to
// each other.
var coerceSlider func(v *core.ViewBase)

func init() {
	coerceSlider = func(v *core.ViewBase) { ValueProperty.Coerce(v) }
	SliderClass.MustRegister(MinValueProperty, MaxValueProperty, ValueProperty)
	SliderClass.NativeBacked(MinValueProperty, MaxValueProperty, ValueProperty)
}

// Slider picks a number from a range.
type Slider struct {
	core.ViewBase
}

// NewSlider creates a slider over [0, 100].
func NewSlider() *Slider {
	s := &Slider{}
	s.Init(s, SliderClass)
	return s
}

// Value returns the coerced value.
func (s *Slider) Value() float64 { return ValueProperty.Get(s) }

// SetValue sets the raw value.
func (s *Slider) SetValue(v float64) { ValueProperty.Set(s, v) }

// SetRange sets both bounds. The value is coerced after each one.
func (s *Slider) SetRange(lo, hi float64) {
	MinValueProperty.Set(s, lo)
	MaxValueProperty.Set(s, hi)
}
