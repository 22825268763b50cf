package core

import (
	stderrors "errors"

	"github.com/go-drift/cascade/pkg/errors"
)

// PropertyValue pairs a longhand property with the value a shorthand
// expanded to. Value may be text, in which case the longhand's converter
// runs on it.
type PropertyValue struct {
	Property Registrable
	Value    any
}

// ShorthandPropertyOptions configures a shorthand.
type ShorthandPropertyOptions struct {
	// Name is the property name (for example "margin").
	Name string
	// CSSName is the CSS declaration name (for example "margin").
	CSSName string
	// Converter expands a shorthand value into longhand pairs. The value
	// is either CSS text or a typed value supplied by code.
	Converter func(value any) ([]PropertyValue, error)
	// Getter composes the shorthand value from the longhands on a style.
	Getter func(s *Style) any
}

// ShorthandProperty sets several style properties from one value.
type ShorthandProperty struct {
	d *Descriptor
}

// NewShorthandProperty declares a shorthand. It panics with a
// *errors.ConfigError when Converter is nil.
func NewShorthandProperty(opts ShorthandPropertyOptions) *ShorthandProperty {
	if opts.Converter == nil {
		panic(&errors.ConfigError{Property: opts.Name, Reason: "shorthand requires a Converter"})
	}
	d := newDescriptor(KindShorthand, opts.Name)
	d.cssName = opts.CSSName
	d.cssLocalName = cssLocalName(opts.CSSName)
	d.expand = opts.Converter
	d.getShorthand = opts.Getter
	declare(d)
	return &ShorthandProperty{d: d}
}

// Descriptor returns the untyped descriptor.
func (p *ShorthandProperty) Descriptor() *Descriptor { return p.d }

// Name returns the property name.
func (p *ShorthandProperty) Name() string { return p.d.name }

// CSSName returns the CSS declaration name.
func (p *ShorthandProperty) CSSName() string { return p.d.cssName }

// Get composes the shorthand value on v. It returns nil when the
// shorthand has no getter.
func (p *ShorthandProperty) Get(v View) any {
	if p.d.getShorthand == nil {
		return nil
	}
	return p.d.getShorthand(v.Base().Style())
}

// Set assigns every longhand the value expands to as a local value. Either
// all longhands are assigned or, on a conversion error, none are.
func (p *ShorthandProperty) Set(v View, value any) error {
	pairs, err := expandShorthand(p.d, value)
	if err != nil {
		return err
	}
	base := v.Base()
	for _, pair := range pairs {
		base.setLayer(pair.d, layerLocal, pair.value)
	}
	return nil
}

// Unset removes the local value of every longhand the shorthand covers.
// The longhands are found by expanding the shorthand's current value.
func (p *ShorthandProperty) Unset(v View) {
	current := p.Get(v)
	if current == nil {
		return
	}
	pairs, err := expandShorthand(p.d, current)
	if err != nil {
		return
	}
	base := v.Base()
	for _, pair := range pairs {
		base.setLayer(pair.d, layerLocal, UnsetValue)
	}
}

type expandedValue struct {
	d     *Descriptor
	value any
}

// expandShorthand runs the converter and converts every longhand value.
// Nothing is returned unless all of them succeed.
func expandShorthand(d *Descriptor, value any) ([]expandedValue, error) {
	if value == UnsetValue {
		return nil, &errors.ConversionError{Property: d.name, Value: value, Err: stderrors.New("shorthand cannot be unset as a value")}
	}
	pairs, err := d.expand(value)
	if err != nil {
		return nil, &errors.ConversionError{Property: d.name, Value: value, Err: err}
	}
	out := make([]expandedValue, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Property == nil {
			return nil, &errors.ConversionError{Property: d.name, Value: value, Err: stderrors.New("converter returned a nil property")}
		}
		ld := pair.Property.Descriptor()
		converted, err := ld.Convert(pair.Value)
		if err != nil {
			return nil, &errors.ConversionError{Property: d.name, Value: value, Err: err}
		}
		out = append(out, expandedValue{d: ld, value: converted})
	}
	return out, nil
}
