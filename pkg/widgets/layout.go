package widgets

import (
	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/layout"
)

// LayoutBaseClass is the base of views that arrange children.
var LayoutBaseClass = core.NewClass("LayoutBase", ViewClass)

var (
	PaddingTopProperty    = newLengthProperty("paddingTop", "padding-top")
	PaddingRightProperty  = newLengthProperty("paddingRight", "padding-right")
	PaddingBottomProperty = newLengthProperty("paddingBottom", "padding-bottom")
	PaddingLeftProperty   = newLengthProperty("paddingLeft", "padding-left")
	PaddingProperty       = newInsetsShorthand("padding", [4]*core.CssProperty[layout.Length]{
		PaddingTopProperty, PaddingRightProperty, PaddingBottomProperty, PaddingLeftProperty,
	})

	ClipToBoundsProperty = core.NewProperty(core.PropertyOptions[bool]{
		Name:           "clipToBounds",
		DefaultValue:   true,
		ValueConverter: core.ParseBool,
	})
)

func init() {
	LayoutBaseClass.MustRegister(ClipToBoundsProperty)
	LayoutBaseClass.NativeBacked(ClipToBoundsProperty)
}

// Rect is a child frame in dip, relative to the parent's origin.
type Rect struct {
	X, Y, Width, Height float64
}

// LayoutBase holds padding and child frames.
type LayoutBase struct {
	core.ViewBase

	frames map[core.ViewID]Rect
}

// Padding returns the resolved padding.
func (l *LayoutBase) Padding() layout.EdgeInsets {
	return layout.EdgeInsets{
		Top:    PaddingTopProperty.Get(l),
		Right:  PaddingRightProperty.Get(l),
		Bottom: PaddingBottomProperty.Get(l),
		Left:   PaddingLeftProperty.Get(l),
	}
}

// Frame returns the frame assigned to child by the last layout pass.
func (l *LayoutBase) Frame(child core.View) (Rect, bool) {
	r, ok := l.frames[child.Base().Handle()]
	return r, ok
}

// StackLayoutClass is the class of StackLayout.
var StackLayoutClass = core.NewClass("StackLayout", LayoutBaseClass)

var OrientationProperty = core.NewProperty(core.PropertyOptions[Orientation]{
	Name:           "orientation",
	DefaultValue:   OrientationVertical,
	AffectsLayout:  true,
	ValueConverter: parseOrientation,
})

func init() {
	StackLayoutClass.MustRegister(OrientationProperty)
}

// StackLayout arranges its children one after another along its
// orientation. Auto lengths size to zero; percentages resolve against the
// stack's own width or height when that is fixed.
type StackLayout struct {
	LayoutBase
}

// NewStackLayout creates a vertical stack.
func NewStackLayout() *StackLayout {
	s := &StackLayout{}
	s.Init(s, StackLayoutClass)
	return s
}

// Orientation returns the resolved orientation.
func (s *StackLayout) Orientation() Orientation { return OrientationProperty.Get(s) }

// OnLayout assigns a frame to every visible child.
func (s *StackLayout) OnLayout() {
	const density = 1
	pad := s.Padding()
	width := WidthProperty.Get(s).ToDevicePixels(0, density)
	height := HeightProperty.Get(s).ToDevicePixels(0, density)
	horizontal := s.Orientation() == OrientationHorizontal

	x := pad.Left.ToDevicePixels(width, density)
	y := pad.Top.ToDevicePixels(height, density)
	frames := make(map[core.ViewID]Rect, s.ChildCount())
	s.EachChild(func(child core.View) bool {
		if IsCollapsed(child) {
			return true
		}
		m := Margin(child)
		cw := WidthProperty.Get(child).ToDevicePixels(width, density)
		ch := HeightProperty.Get(child).ToDevicePixels(height, density)
		r := Rect{
			X:      x + m.Left.ToDevicePixels(width, density),
			Y:      y + m.Top.ToDevicePixels(height, density),
			Width:  cw,
			Height: ch,
		}
		frames[child.Base().Handle()] = r
		if horizontal {
			x = r.X + cw + m.Right.ToDevicePixels(width, density)
		} else {
			y = r.Y + ch + m.Bottom.ToDevicePixels(height, density)
		}
		return true
	})
	s.frames = frames
}
