package widgets

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/graphics"
)

// TextBaseClass is the base of views that display text.
var TextBaseClass = core.NewClass("TextBase", ViewClass)

var (
	TextProperty = core.NewProperty(core.PropertyOptions[string]{
		Name:          "text",
		AffectsLayout: true,
	})
	// TextWrapProperty lets text break onto several lines.
	TextWrapProperty = core.NewProperty(core.PropertyOptions[bool]{
		Name:           "textWrap",
		AffectsLayout:  true,
		ValueConverter: core.ParseBool,
	})
	ColorProperty = core.NewInheritedCssProperty(core.CssPropertyOptions[graphics.Color]{
		Name:           "color",
		CSSName:        "color",
		DefaultValue:   graphics.ColorBlack,
		ValueConverter: graphics.ParseColor,
	})
	FontSizeProperty = core.NewInheritedCssProperty(core.CssPropertyOptions[float64]{
		Name:           "fontSize",
		CSSName:        "font-size",
		DefaultValue:   14,
		AffectsLayout:  true,
		ValueConverter: parseFontSize,
	})
	TextTransformProperty = core.NewCssProperty(core.CssPropertyOptions[TextTransform]{
		Name:           "textTransform",
		CSSName:        "text-transform",
		DefaultValue:   TextTransformNone,
		AffectsLayout:  true,
		ValueConverter: parseTextTransform,
	})
	TextAlignmentProperty = core.NewInheritedCssProperty(core.CssPropertyOptions[TextAlignment]{
		Name:           "textAlignment",
		CSSName:        "text-align",
		DefaultValue:   TextAlignmentInitial,
		ValueConverter: parseTextAlignment,
	})
)

func init() {
	TextBaseClass.MustRegister(TextProperty, TextWrapProperty)
	TextBaseClass.NativeBacked(TextProperty, TextWrapProperty, ColorProperty, FontSizeProperty,
		TextTransformProperty, TextAlignmentProperty)
}

// TextBase holds the text properties shared by Label and Button.
type TextBase struct {
	core.ViewBase
}

// Text returns the raw text.
func (t *TextBase) Text() string { return TextProperty.Get(t) }

// SetText sets the text.
func (t *TextBase) SetText(text string) { TextProperty.Set(t, text) }

// Color returns the resolved text color.
func (t *TextBase) Color() graphics.Color { return ColorProperty.Get(t) }

// SetColor sets the text color locally.
func (t *TextBase) SetColor(c graphics.Color) { ColorProperty.Set(t, c) }

// FontSize returns the resolved font size.
func (t *TextBase) FontSize() float64 { return FontSizeProperty.Get(t) }

// DisplayText returns the text with the resolved text transform applied.
func (t *TextBase) DisplayText() string {
	return ApplyTextTransform(TextProperty.Get(t), TextTransformProperty.Get(t))
}

// ApplyTextTransform changes the case of text.
func ApplyTextTransform(text string, transform TextTransform) string {
	switch transform {
	case TextTransformUppercase:
		return strings.ToUpper(text)
	case TextTransformLowercase:
		return strings.ToLower(text)
	case TextTransformCapitalize:
		var b strings.Builder
		start := true
		for _, r := range text {
			if start && unicode.IsLetter(r) {
				b.WriteRune(unicode.ToUpper(r))
				start = false
				continue
			}
			if unicode.IsSpace(r) {
				start = true
			}
			b.WriteRune(r)
		}
		return b.String()
	default:
		return text
	}
}

func parseFontSize(text string) (float64, error) {
	f, err := core.ParseFloat(strings.TrimSuffix(strings.TrimSpace(text), "px"))
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("font size must be positive, got %v", f)
	}
	return f, nil
}

// LabelClass is the class of Label.
var LabelClass = core.NewClass("Label", TextBaseClass)

// Label displays read-only text.
type Label struct {
	TextBase
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	l := &Label{}
	l.Init(l, LabelClass)
	if text != "" {
		l.SetText(text)
	}
	return l
}

// ButtonClass is the class of Button.
var ButtonClass = core.NewClass("Button", TextBaseClass)

// Button is a tappable text view. While pressed it carries the :pressed
// pseudo class.
type Button struct {
	TextBase

	// OnTap is called by Tap while the button is enabled.
	OnTap func()
}

// NewButton creates a button with a label and tap handler.
func NewButton(text string, onTap func()) *Button {
	b := &Button{OnTap: onTap}
	b.Init(b, ButtonClass)
	if text != "" {
		b.SetText(text)
	}
	return b
}

// SetPressed adds or removes the :pressed pseudo class.
func (b *Button) SetPressed(pressed bool) {
	if pressed && IsEnabled(b) {
		b.AddPseudoClass("pressed")
		return
	}
	b.DeletePseudoClass("pressed")
}

// Tap runs OnTap if the button is enabled and reports whether it ran.
func (b *Button) Tap() bool {
	if !IsEnabled(b) || b.OnTap == nil {
		return false
	}
	b.OnTap()
	return true
}
