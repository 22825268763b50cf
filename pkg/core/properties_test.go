package core

import (
	"fmt"
	"strings"
)

// Test properties are declared once per test binary; CSS names are global.
var (
	baseClass  = NewClass("Base", nil)
	labelClass = NewClass("Label", baseClass)

	textProperty = NewProperty(PropertyOptions[string]{
		Name: "text",
	})
	widthProperty = NewProperty(PropertyOptions[float64]{
		Name:           "width",
		AffectsLayout:  true,
		ValueConverter: ParseFloat,
	})
	themeProperty = NewInheritedProperty(PropertyOptions[string]{
		Name:         "theme",
		DefaultValue: "light",
	})
	enabledProperty = NewProperty(PropertyOptions[bool]{
		Name:           "isEnabled",
		DefaultValue:   true,
		ValueConverter: ParseBool,
	})

	minProperty = NewProperty(PropertyOptions[float64]{
		Name:         "minValue",
		ValueChanged: func(v *ViewBase, _, _ float64) { coerceValue(v) },
	})
	maxProperty = NewProperty(PropertyOptions[float64]{
		Name:         "maxValue",
		DefaultValue: 100,
		ValueChanged: func(v *ViewBase, _, _ float64) { coerceValue(v) },
	})
	valueProperty = NewCoercibleProperty(CoerciblePropertyOptions[float64]{
		PropertyOptions: PropertyOptions[float64]{
			Name:           "value",
			ValueConverter: ParseFloat,
		},
		CoerceValue: func(v *ViewBase, value float64) float64 {
			return min(max(value, minProperty.Get(v)), maxProperty.Get(v))
		},
	})

	opacityProperty = NewCssAnimationProperty(CssPropertyOptions[float64]{
		Name:           "opacity",
		CSSName:        "opacity",
		DefaultValue:   1,
		ValueConverter: ParseFloat,
	})
	fontSizeProperty = NewInheritedCssProperty(CssPropertyOptions[float64]{
		Name:           "fontSize",
		CSSName:        "font-size",
		DefaultValue:   12,
		AffectsLayout:  true,
		ValueConverter: ParseFloat,
	})
	transformProperty = NewCssProperty(CssPropertyOptions[textTransform]{
		Name:           "textTransform",
		CSSName:        "text-transform",
		DefaultValue:   transformNone,
		ValueConverter: MakeParser(MakeValidator(transformNone, transformUppercase, transformLowercase)),
	})
	tagsProperty = NewCssProperty(CssPropertyOptions[[]string]{
		Name:    "tags",
		CSSName: "-x-tags",
		ValueConverter: func(text string) ([]string, error) {
			return strings.Fields(text), nil
		},
	})

	marginTopProperty    = newSideProperty("marginTop", "margin-top")
	marginRightProperty  = newSideProperty("marginRight", "margin-right")
	marginBottomProperty = newSideProperty("marginBottom", "margin-bottom")
	marginLeftProperty   = newSideProperty("marginLeft", "margin-left")
	marginProperty       = NewShorthandProperty(ShorthandPropertyOptions{
		Name:      "margin",
		CSSName:   "margin",
		Converter: convertMargin,
		Getter: func(s *Style) any {
			return fmt.Sprintf("%v %v %v %v", s.Get(marginTopProperty), s.Get(marginRightProperty),
				s.Get(marginBottomProperty), s.Get(marginLeftProperty))
		},
	})
)

type textTransform string

const (
	transformNone      textTransform = "none"
	transformUppercase textTransform = "uppercase"
	transformLowercase textTransform = "lowercase"
)

func newSideProperty(name, cssName string) *CssProperty[float64] {
	return NewCssProperty(CssPropertyOptions[float64]{
		Name:           name,
		CSSName:        cssName,
		AffectsLayout:  true,
		ValueConverter: ParseFloat,
	})
}

func convertMargin(value any) ([]PropertyValue, error) {
	text, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("margin must be text, got %T", value)
	}
	parts := strings.Fields(text)
	switch len(parts) {
	case 1:
		parts = []string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		parts = []string{parts[0], parts[1], parts[0], parts[1]}
	case 4:
	default:
		return nil, fmt.Errorf("expected 1, 2 or 4 values")
	}
	return []PropertyValue{
		{marginTopProperty, parts[0]},
		{marginRightProperty, parts[1]},
		{marginBottomProperty, parts[2]},
		{marginLeftProperty, parts[3]},
	}, nil
}

// coerceValue is assigned in init; the bound properties and valueProperty
// refer to each other.
var coerceValue func(v *ViewBase)

func init() {
	coerceValue = func(v *ViewBase) { valueProperty.Coerce(v) }
	baseClass.MustRegister(widthProperty, themeProperty, enabledProperty, minProperty, maxProperty, valueProperty)
	baseClass.NativeBacked(opacityProperty, enabledProperty)
	labelClass.MustRegister(textProperty)
	labelClass.NativeBacked(textProperty, fontSizeProperty)
}

// fakePeer records pushed values.
type fakePeer struct {
	values   map[Key]any
	defaults map[Key]any
	pushes   []string
	failing  map[Key]error
}

func newFakePeer() *fakePeer {
	return &fakePeer{values: make(map[Key]any), defaults: make(map[Key]any), failing: make(map[Key]error)}
}

func (p *fakePeer) DefaultValue(d *Descriptor) (any, bool) {
	v, ok := p.defaults[d.Key()]
	return v, ok
}

func (p *fakePeer) SetValue(d *Descriptor, value any) error {
	if err := p.failing[d.Key()]; err != nil {
		return err
	}
	p.values[d.Key()] = value
	p.pushes = append(p.pushes, fmt.Sprintf("%s=%v", d.Name(), value))
	return nil
}

// recorder collects change events of one view.
type recorder struct {
	events []string
}

func record(v View) *recorder {
	r := &recorder{}
	v.Base().AddPropertyListener(func(e PropertyChangeEvent) {
		r.events = append(r.events, fmt.Sprintf("%s:%v->%v", e.Property.Name(), e.OldValue, e.NewValue))
	})
	return r
}

func (r *recorder) String() string { return strings.Join(r.events, " ") }

// tree builds parent -> children links and returns the parent.
func tree(parent View, children ...View) View {
	for _, c := range children {
		parent.Base().AddView(c)
	}
	return parent
}
