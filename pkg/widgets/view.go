package widgets

import (
	"fmt"

	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/graphics"
	"github.com/go-drift/cascade/pkg/layout"
)

// ViewClass is the root of every built-in view kind.
var ViewClass = core.NewClass("View", nil)

var (
	// OpacityProperty is the view alpha in [0, 1].
	OpacityProperty = core.NewCssAnimationProperty(core.CssPropertyOptions[float64]{
		Name:           "opacity",
		CSSName:        "opacity",
		DefaultValue:   1,
		ValueConverter: parseOpacity,
	})
	BackgroundColorProperty = core.NewCssAnimationProperty(core.CssPropertyOptions[graphics.Color]{
		Name:           "backgroundColor",
		CSSName:        "background-color",
		DefaultValue:   graphics.ColorTransparent,
		ValueConverter: graphics.ParseColor,
	})
	VisibilityProperty = core.NewCssProperty(core.CssPropertyOptions[Visibility]{
		Name:           "visibility",
		CSSName:        "visibility",
		DefaultValue:   VisibilityVisible,
		AffectsLayout:  true,
		ValueConverter: parseVisibility,
	})
	WidthProperty = core.NewCssProperty(core.CssPropertyOptions[layout.Length]{
		Name:           "width",
		CSSName:        "width",
		DefaultValue:   layout.Auto,
		AffectsLayout:  true,
		ValueConverter: layout.ParseLength,
	})
	HeightProperty = core.NewCssProperty(core.CssPropertyOptions[layout.Length]{
		Name:           "height",
		CSSName:        "height",
		DefaultValue:   layout.Auto,
		AffectsLayout:  true,
		ValueConverter: layout.ParseLength,
	})

	MarginTopProperty    = newLengthProperty("marginTop", "margin-top")
	MarginRightProperty  = newLengthProperty("marginRight", "margin-right")
	MarginBottomProperty = newLengthProperty("marginBottom", "margin-bottom")
	MarginLeftProperty   = newLengthProperty("marginLeft", "margin-left")
	// MarginProperty expands one to four lengths onto the margin longhands.
	MarginProperty = newInsetsShorthand("margin", [4]*core.CssProperty[layout.Length]{
		MarginTopProperty, MarginRightProperty, MarginBottomProperty, MarginLeftProperty,
	})

	// IsEnabledProperty toggles the :disabled pseudo class.
	IsEnabledProperty = core.NewProperty(core.PropertyOptions[bool]{
		Name:           "isEnabled",
		DefaultValue:   true,
		ValueConverter: core.ParseBool,
		ValueChanged: func(v *core.ViewBase, _, enabled bool) {
			if enabled {
				v.DeletePseudoClass("disabled")
			} else {
				v.AddPseudoClass("disabled")
			}
		},
	})
)

func init() {
	ViewClass.MustRegister(IsEnabledProperty)
	ViewClass.NativeBacked(OpacityProperty, BackgroundColorProperty, VisibilityProperty, IsEnabledProperty)
}

// View is a plain rectangle.
type View struct {
	core.ViewBase
}

// NewView creates a View.
func NewView() *View {
	v := &View{}
	v.Init(v, ViewClass)
	return v
}

// Opacity returns the resolved opacity of any view.
func Opacity(v core.View) float64 { return OpacityProperty.Get(v) }

// Margin returns the resolved margins of any view.
func Margin(v core.View) layout.EdgeInsets {
	return layout.EdgeInsets{
		Top:    MarginTopProperty.Get(v),
		Right:  MarginRightProperty.Get(v),
		Bottom: MarginBottomProperty.Get(v),
		Left:   MarginLeftProperty.Get(v),
	}
}

// IsEnabled reports whether v accepts interaction.
func IsEnabled(v core.View) bool { return IsEnabledProperty.Get(v) }

// IsCollapsed reports whether v takes no space in layout.
func IsCollapsed(v core.View) bool { return VisibilityProperty.Get(v) == VisibilityCollapse }

func parseOpacity(text string) (float64, error) {
	f, err := core.ParseFloat(text)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("opacity %v is outside [0, 1]", f)
	}
	return f, nil
}

func newLengthProperty(name, cssName string) *core.CssProperty[layout.Length] {
	return core.NewCssProperty(core.CssPropertyOptions[layout.Length]{
		Name:           name,
		CSSName:        cssName,
		AffectsLayout:  true,
		ValueConverter: layout.ParseLength,
	})
}

// newInsetsShorthand declares a shorthand over four side lengths in CSS
// order. It accepts CSS text or a layout.EdgeInsets.
func newInsetsShorthand(name string, sides [4]*core.CssProperty[layout.Length]) *core.ShorthandProperty {
	return core.NewShorthandProperty(core.ShorthandPropertyOptions{
		Name:    name,
		CSSName: name,
		Converter: func(value any) ([]core.PropertyValue, error) {
			var insets layout.EdgeInsets
			switch v := value.(type) {
			case string:
				parsed, err := layout.ParseEdgeInsets(v)
				if err != nil {
					return nil, err
				}
				insets = parsed
			case layout.EdgeInsets:
				insets = v
			case layout.Length:
				insets = layout.EdgeInsetsAll(v)
			default:
				return nil, fmt.Errorf("%s cannot be set from %T", name, value)
			}
			return []core.PropertyValue{
				{Property: sides[0], Value: insets.Top},
				{Property: sides[1], Value: insets.Right},
				{Property: sides[2], Value: insets.Bottom},
				{Property: sides[3], Value: insets.Left},
			}, nil
		},
		Getter: func(s *core.Style) any {
			return layout.EdgeInsets{
				Top:    s.Get(sides[0]).(layout.Length),
				Right:  s.Get(sides[1]).(layout.Length),
				Bottom: s.Get(sides[2]).(layout.Length),
				Left:   s.Get(sides[3]).(layout.Length),
			}.String()
		},
	})
}
