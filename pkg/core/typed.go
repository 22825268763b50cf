package core

import (
	"reflect"

	"github.com/go-drift/cascade/pkg/errors"
)

// PropertyOptions configures a view property.
type PropertyOptions[T any] struct {
	// Name is required and must be unique along a class chain.
	Name string
	// DefaultValue is the value when no layer is set.
	DefaultValue T
	// AffectsLayout requests layout on the view whenever the value changes.
	AffectsLayout bool
	// EqualityComparer replaces strict equality for change detection.
	EqualityComparer func(a, b T) bool
	// ValueChanged runs after the resolved value changes.
	ValueChanged func(target *ViewBase, oldValue, newValue T)
	// ValueConverter turns CSS or markup text into a value.
	ValueConverter func(text string) (T, error)
}

// CoerciblePropertyOptions configures a coercible view property.
type CoerciblePropertyOptions[T any] struct {
	PropertyOptions[T]
	// CoerceValue is required. It normalizes the raw value every time the
	// property resolves.
	CoerceValue func(target *ViewBase, value T) T
}

// CssPropertyOptions configures a style property.
type CssPropertyOptions[T any] struct {
	// Name is the property name (for example "backgroundColor").
	Name string
	// CSSName is the CSS declaration name (for example "background-color").
	CSSName string
	// DefaultValue is the value when no layer is set.
	DefaultValue T
	// AffectsLayout requests layout on the view whenever the value changes.
	AffectsLayout bool
	// EqualityComparer replaces strict equality for change detection.
	EqualityComparer func(a, b T) bool
	// ValueChanged runs after the resolved value changes.
	ValueChanged func(target *Style, oldValue, newValue T)
	// ValueConverter turns CSS text into a value.
	ValueConverter func(text string) (T, error)
}

// valueAs returns v as a T, or the zero T when v holds something else.
func valueAs[T any](v any) T {
	t, _ := v.(T)
	return t
}

func buildDescriptor[T any](kind PropertyKind, name, cssName string, def T, affectsLayout bool,
	cmp func(a, b T) bool, conv func(string) (T, error)) *Descriptor {
	d := newDescriptor(kind, name)
	d.cssName = cssName
	d.cssLocalName = cssLocalName(cssName)
	d.typ = reflect.TypeFor[T]()
	d.defaultValue = def
	d.affectsLayout = affectsLayout
	if cmp != nil {
		d.equal = func(a, b any) bool { return cmp(valueAs[T](a), valueAs[T](b)) }
	}
	if conv != nil {
		d.convert = func(text string) (any, error) { return conv(text) }
	}
	return d
}

func viewCallback[T any](fn func(*ViewBase, T, T)) func(*ViewBase, any, any) {
	if fn == nil {
		return nil
	}
	return func(v *ViewBase, oldValue, newValue any) {
		fn(v, valueAs[T](oldValue), valueAs[T](newValue))
	}
}

func styleCallback[T any](fn func(*Style, T, T)) func(*ViewBase, any, any) {
	if fn == nil {
		return nil
	}
	return func(v *ViewBase, oldValue, newValue any) {
		fn(v.Style(), valueAs[T](oldValue), valueAs[T](newValue))
	}
}

// handle is the typed accessor shared by every non-shorthand kind.
type handle[T any] struct {
	d *Descriptor
}

// Descriptor returns the untyped descriptor.
func (h handle[T]) Descriptor() *Descriptor { return h.d }

// Name returns the property name.
func (h handle[T]) Name() string { return h.d.name }

// Key returns the storage key.
func (h handle[T]) Key() Key { return h.d.key }

// DefaultValue returns the declared default.
func (h handle[T]) DefaultValue() T { return valueAs[T](h.d.defaultValue) }

// Get returns the resolved value on v.
func (h handle[T]) Get(v View) T {
	return valueAs[T](v.Base().Value(h.d))
}

// Set assigns a local value on v.
func (h handle[T]) Set(v View, value T) {
	v.Base().setLayer(h.d, layerLocal, value)
}

// Unset removes the local value on v.
func (h handle[T]) Unset(v View) {
	v.Base().setLayer(h.d, layerLocal, UnsetValue)
}

// Source reports which layer supplies the resolved value on v.
func (h handle[T]) Source(v View) ValueSource {
	return v.Base().Source(h.d)
}

// Observe calls fn whenever the resolved value on v changes. The returned
// function removes the listener.
func (h handle[T]) Observe(v View, fn func(oldValue, newValue T)) func() {
	return v.Base().AddPropertyListener(func(e PropertyChangeEvent) {
		if e.Property == h.d {
			fn(valueAs[T](e.OldValue), valueAs[T](e.NewValue))
		}
	})
}

// Property is a plain view property.
type Property[T any] struct{ handle[T] }

// NewProperty declares a plain view property.
func NewProperty[T any](opts PropertyOptions[T]) *Property[T] {
	d := buildDescriptor(KindProperty, opts.Name, "", opts.DefaultValue, opts.AffectsLayout, opts.EqualityComparer, opts.ValueConverter)
	d.valueChanged = viewCallback(opts.ValueChanged)
	declare(d)
	return &Property[T]{handle[T]{d}}
}

// InheritedProperty is a view property that descendants inherit unless
// they shadow it.
type InheritedProperty[T any] struct{ handle[T] }

// NewInheritedProperty declares an inherited view property.
func NewInheritedProperty[T any](opts PropertyOptions[T]) *InheritedProperty[T] {
	d := buildDescriptor(KindInherited, opts.Name, "", opts.DefaultValue, opts.AffectsLayout, opts.EqualityComparer, opts.ValueConverter)
	d.valueChanged = viewCallback(opts.ValueChanged)
	declare(d)
	return &InheritedProperty[T]{handle[T]{d}}
}

// CoercibleProperty is a view property whose raw value is normalized by a
// coercion function each time it resolves.
type CoercibleProperty[T any] struct{ handle[T] }

// NewCoercibleProperty declares a coercible view property. It panics with
// a *errors.ConfigError when CoerceValue is nil.
func NewCoercibleProperty[T any](opts CoerciblePropertyOptions[T]) *CoercibleProperty[T] {
	if opts.CoerceValue == nil {
		panic(&errors.ConfigError{Property: opts.Name, Reason: "coercible property requires CoerceValue"})
	}
	d := buildDescriptor(KindCoercible, opts.Name, "", opts.DefaultValue, opts.AffectsLayout, opts.EqualityComparer, opts.ValueConverter)
	d.valueChanged = viewCallback(opts.ValueChanged)
	coerce := opts.CoerceValue
	d.coerce = func(v *ViewBase, value any) any { return coerce(v, valueAs[T](value)) }
	declare(d)
	return &CoercibleProperty[T]{handle[T]{d}}
}

// Coerce re-resolves the property on v. Call it when a value the coercion
// depends on has changed.
func (p *CoercibleProperty[T]) Coerce(v View) {
	v.Base().refresh(p.d)
}

// CssProperty is a style property. CSS rules set its CSS layer and direct
// assignment sets its local layer.
type CssProperty[T any] struct{ handle[T] }

// NewCssProperty declares a style property.
func NewCssProperty[T any](opts CssPropertyOptions[T]) *CssProperty[T] {
	return &CssProperty[T]{newCss(KindCss, opts)}
}

// NewInheritedCssProperty declares a style property that descendants
// inherit.
func NewInheritedCssProperty[T any](opts CssPropertyOptions[T]) *CssProperty[T] {
	return &CssProperty[T]{newCss(KindInheritedCss, opts)}
}

func newCss[T any](kind PropertyKind, opts CssPropertyOptions[T]) handle[T] {
	d := buildDescriptor(kind, opts.Name, opts.CSSName, opts.DefaultValue, opts.AffectsLayout, opts.EqualityComparer, opts.ValueConverter)
	d.valueChanged = styleCallback(opts.ValueChanged)
	declare(d)
	return handle[T]{d}
}

// CSSName returns the CSS declaration name.
func (p *CssProperty[T]) CSSName() string { return p.d.cssName }

// IsSet reports whether any layer other than the default supplies the
// value on v.
func (p *CssProperty[T]) IsSet(v View) bool {
	return v.Base().Source(p.d) != SourceDefault
}

// CssAnimationProperty is a style property that keyframe animations may
// drive. A keyframe value takes precedence over every other layer.
type CssAnimationProperty[T any] struct {
	CssProperty[T]
}

// NewCssAnimationProperty declares an animatable style property.
func NewCssAnimationProperty[T any](opts CssPropertyOptions[T]) *CssAnimationProperty[T] {
	return &CssAnimationProperty[T]{CssProperty[T]{newCss(KindAnimation, opts)}}
}

// SetKeyframe sets the keyframe layer on v.
func (p *CssAnimationProperty[T]) SetKeyframe(v View, value T) {
	v.Base().setLayer(p.d, layerKeyframe, value)
}

// ClearKeyframe removes the keyframe layer on v.
func (p *CssAnimationProperty[T]) ClearKeyframe(v View) {
	v.Base().setLayer(p.d, layerKeyframe, UnsetValue)
}
