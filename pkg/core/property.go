package core

import (
	"fmt"
	"log"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-drift/cascade/pkg/errors"
)

// PropertyKind tags the variant of a property descriptor.
type PropertyKind uint8

const (
	// KindProperty is a plain view property.
	KindProperty PropertyKind = iota
	// KindCoercible is a view property whose value is re-validated by a
	// coercion function every time it resolves.
	KindCoercible
	// KindInherited is a view property that descendants inherit.
	KindInherited
	// KindCss is a style property that CSS rules may set.
	KindCss
	// KindInheritedCss is a style property that CSS rules may set and
	// descendants inherit.
	KindInheritedCss
	// KindShorthand expands into several style properties.
	KindShorthand
	// KindAnimation is a style property that keyframe animations may drive.
	KindAnimation
)

func (k PropertyKind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindCoercible:
		return "coercible"
	case KindInherited:
		return "inherited"
	case KindCss:
		return "css"
	case KindInheritedCss:
		return "inherited-css"
	case KindShorthand:
		return "shorthand"
	case KindAnimation:
		return "animation"
	default:
		return fmt.Sprintf("PropertyKind(%d)", k)
	}
}

// IsCSS reports whether properties of this kind live on the style.
func (k PropertyKind) IsCSS() bool {
	return k == KindCss || k == KindInheritedCss || k == KindAnimation || k == KindShorthand
}

// IsInherited reports whether properties of this kind propagate to descendants.
func (k PropertyKind) IsInherited() bool {
	return k == KindInherited || k == KindInheritedCss
}

// Key identifies a descriptor's storage slot. Keys are unique for the
// lifetime of the process and never reused.
type Key uint32

var lastKey atomic.Uint32

type unsetValue struct{}

func (unsetValue) String() string { return "unset" }

// UnsetValue removes the value of the layer it is assigned to. Assigning it
// locally drops the local value, and a CSS declaration with it drops the
// CSS value.
var UnsetValue any = unsetValue{}

// Registrable is implemented by every typed property handle.
type Registrable interface {
	Descriptor() *Descriptor
}

// Descriptor is the untyped definition shared by every property kind.
// Descriptors are immutable once constructed.
type Descriptor struct {
	key           Key
	kind          PropertyKind
	name          string
	cssName       string
	cssLocalName  string
	typ           reflect.Type
	defaultValue  any
	affectsLayout bool

	equal        func(a, b any) bool
	valueChanged func(v *ViewBase, oldValue, newValue any)
	convert      func(text string) (any, error)
	coerce       func(v *ViewBase, value any) any
	expand       func(value any) ([]PropertyValue, error)
	getShorthand func(s *Style) any

	registered atomic.Bool
}

// Descriptor returns d itself so a *Descriptor can be passed wherever a
// typed handle is accepted.
func (d *Descriptor) Descriptor() *Descriptor { return d }

// Key returns the storage key.
func (d *Descriptor) Key() Key { return d.key }

// Kind returns the property kind.
func (d *Descriptor) Kind() PropertyKind { return d.kind }

// Name returns the property name.
func (d *Descriptor) Name() string { return d.name }

// CSSName returns the CSS name, empty for non-CSS kinds.
func (d *Descriptor) CSSName() string { return d.cssName }

// CSSLocalName returns the CSS name without a vendor prefix.
func (d *Descriptor) CSSLocalName() string { return d.cssLocalName }

// Type returns the Go type of the property's values. It is nil for shorthands.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// DefaultValue returns the declared default.
func (d *Descriptor) DefaultValue() any { return d.defaultValue }

// AffectsLayout reports whether a change requests layout on the view.
func (d *Descriptor) AffectsLayout() bool { return d.affectsLayout }

// Equal compares two values with the descriptor's comparer.
func (d *Descriptor) Equal(a, b any) bool { return d.equal(a, b) }

func (d *Descriptor) String() string {
	if d.cssName != "" {
		return d.name + " (" + d.cssName + ")"
	}
	return d.name
}

// Convert turns an input value into one the property accepts. Text goes
// through the property's converter when it has one; any other value must
// be assignable to the property type. UnsetValue passes through.
func (d *Descriptor) Convert(value any) (any, error) {
	if value == UnsetValue {
		return value, nil
	}
	if text, ok := value.(string); ok && d.convert != nil {
		converted, err := d.convert(text)
		if err != nil {
			return nil, &errors.ConversionError{Property: d.name, Value: text, Err: err}
		}
		return converted, nil
	}
	if d.typ == nil {
		return value, nil
	}
	if value == nil {
		if canBeNil(d.typ) {
			return reflect.Zero(d.typ).Interface(), nil
		}
		return nil, &errors.ConversionError{Property: d.name, Value: value, Err: fmt.Errorf("nil is not a %s", d.typ)}
	}
	if !reflect.TypeOf(value).AssignableTo(d.typ) {
		return nil, &errors.ConversionError{Property: d.name, Value: value, Err: fmt.Errorf("%T is not a %s", value, d.typ)}
	}
	return value, nil
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// defaultEqual is strict equality: values of different dynamic types are
// never equal, comparable values use ==, and everything else falls back to
// reflect.DeepEqual.
func defaultEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// cssLocalName strips a leading vendor prefix ("-x-name" becomes "name").
func cssLocalName(cssName string) string {
	if !strings.HasPrefix(cssName, "-") {
		return cssName
	}
	if i := strings.Index(cssName[1:], "-"); i >= 0 {
		return cssName[i+2:]
	}
	return cssName
}

// registry holds the process-wide descriptor tables.
var registry = struct {
	mu              sync.RWMutex
	all             []*Descriptor
	inherited       []*Descriptor
	inheritedCss    []*Descriptor
	cssByName       map[string]*Descriptor // CSS name and property name
	shorthandByName map[string]*Descriptor
	animationByName map[string]*Descriptor
}{
	cssByName:       make(map[string]*Descriptor),
	shorthandByName: make(map[string]*Descriptor),
	animationByName: make(map[string]*Descriptor),
}

func newDescriptor(kind PropertyKind, name string) *Descriptor {
	if name == "" {
		panic(&errors.ConfigError{Property: name, Reason: "property name is required"})
	}
	return &Descriptor{
		key:   Key(lastKey.Add(1)),
		kind:  kind,
		name:  name,
		equal: defaultEqual,
	}
}

// declare adds d to the global tables. CSS names must be unique within
// their table.
func declare(d *Descriptor) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if d.kind.IsCSS() && d.cssName == "" {
		panic(&errors.ConfigError{Property: d.name, Reason: "CSS name is required"})
	}
	switch d.kind {
	case KindCss, KindInheritedCss, KindAnimation:
		if prev, ok := registry.cssByName[d.cssName]; ok {
			panic(&errors.ConfigError{Property: d.name, Reason: fmt.Sprintf("CSS name %q already declared by %s", d.cssName, prev.name)})
		}
		if prev, ok := registry.cssByName[d.name]; ok && d.name != d.cssName {
			panic(&errors.ConfigError{Property: d.name, Reason: fmt.Sprintf("name already declared by %s", prev.name)})
		}
		registry.cssByName[d.cssName] = d
		registry.cssByName[d.name] = d
		if d.kind == KindAnimation {
			registry.animationByName[d.cssName] = d
			registry.animationByName[d.name] = d
		}
		d.registered.Store(true)
	case KindShorthand:
		if prev, ok := registry.shorthandByName[d.cssName]; ok {
			panic(&errors.ConfigError{Property: d.name, Reason: fmt.Sprintf("shorthand %q already declared by %s", d.cssName, prev.name)})
		}
		registry.shorthandByName[d.cssName] = d
		registry.shorthandByName[d.name] = d
		d.registered.Store(true)
	}
	switch d.kind {
	case KindInherited:
		registry.inherited = append(registry.inherited, d)
	case KindInheritedCss:
		registry.inheritedCss = append(registry.inheritedCss, d)
	}
	registry.all = append(registry.all, d)
}

// PropertyByCSSName returns the style property with the given CSS name
// or property name.
func PropertyByCSSName(name string) (*Descriptor, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	d, ok := registry.cssByName[name]
	return d, ok
}

// ShorthandByCSSName returns the shorthand with the given CSS name or
// property name.
func ShorthandByCSSName(name string) (*Descriptor, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	d, ok := registry.shorthandByName[name]
	return d, ok
}

// AnimationPropertyByCSSName returns the animatable style property with
// the given CSS name or property name.
func AnimationPropertyByCSSName(name string) (*Descriptor, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	d, ok := registry.animationByName[name]
	return d, ok
}

// Descriptors returns every declared descriptor in declaration order.
func Descriptors() []*Descriptor {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return slices.Clone(registry.all)
}

func inheritedDescriptors() []*Descriptor {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.inherited
}

func inheritedCssDescriptors() []*Descriptor {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.inheritedCss
}

// UnregisteredProperties returns the names of view properties that were
// declared but never registered on any class.
func UnregisteredProperties() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	var names []string
	for _, d := range registry.all {
		if !d.kind.IsCSS() && !d.registered.Load() {
			names = append(names, d.name)
		}
	}
	return names
}

// PrintUnregisteredProperties logs every unregistered view property.
func PrintUnregisteredProperties() {
	for _, name := range UnregisteredProperties() {
		log.Printf("[cascade] property %q is declared but not registered on any class", name)
	}
}
