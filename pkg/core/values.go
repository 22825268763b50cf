package core

import (
	"github.com/go-drift/cascade/pkg/errors"
)

// ValueSource identifies the layer supplying a resolved value.
type ValueSource uint8

const (
	// SourceDefault means no layer is set and the declared default applies.
	SourceDefault ValueSource = iota
	// SourceInherited means the value comes from the nearest ancestor.
	SourceInherited
	// SourceCss means a matched style rule supplies the value.
	SourceCss
	// SourceLocal means the value was assigned directly.
	SourceLocal
	// SourceKeyframe means a running keyframe animation supplies the value.
	SourceKeyframe
)

func (s ValueSource) String() string {
	switch s {
	case SourceInherited:
		return "inherited"
	case SourceCss:
		return "css"
	case SourceLocal:
		return "local"
	case SourceKeyframe:
		return "keyframe"
	default:
		return "default"
	}
}

type layer uint8

const (
	layerInherited layer = 1 << iota
	layerCss
	layerLocal
	layerKeyframe
)

// slot is the per-view storage of one property.
type slot struct {
	d         *Descriptor
	local     any
	css       any
	inherited any
	keyframe  any
	set       layer

	// inheritedFrom is the view that supplied the inherited layer. It is a
	// handle, not a reference, and is cleared with the layer.
	inheritedFrom ViewID

	resolved any
	source   ValueSource

	nativeDefault    any
	hasNativeDefault bool
}

func (s *slot) store(l layer, value any) {
	if value == UnsetValue {
		s.set &^= l
		value = nil
	} else {
		s.set |= l
	}
	switch l {
	case layerLocal:
		s.local = value
	case layerCss:
		s.css = value
	case layerInherited:
		s.inherited = value
		if value == nil {
			s.inheritedFrom = 0
		}
	case layerKeyframe:
		s.keyframe = value
	}
}

func (s *slot) has(l layer) bool { return s.set&l != 0 }

// Layers is a snapshot of every layer of one property on one view.
type Layers struct {
	Value         any
	Source        ValueSource
	Local         any
	HasLocal      bool
	CSS           any
	HasCSS        bool
	Inherited     any
	HasInherited  bool
	InheritedFrom ViewID
	Keyframe      any
	HasKeyframe   bool
}

// Value returns the resolved value of d on v.
func (v *ViewBase) Value(d *Descriptor) any {
	if s, ok := v.slots[d.key]; ok {
		return s.resolved
	}
	return d.defaultValue
}

// Source reports which layer supplies the resolved value of d on v.
func (v *ViewBase) Source(d *Descriptor) ValueSource {
	if s, ok := v.slots[d.key]; ok {
		return s.source
	}
	return SourceDefault
}

// InheritedFrom returns the view that supplied the inherited layer of d,
// or zero when the layer is not set.
func (v *ViewBase) InheritedFrom(d *Descriptor) ViewID {
	if s, ok := v.slots[d.key]; ok && s.has(layerInherited) {
		return s.inheritedFrom
	}
	return 0
}

// Layers returns a snapshot of every layer of d on v.
func (v *ViewBase) Layers(d *Descriptor) Layers {
	s, ok := v.slots[d.key]
	if !ok {
		return Layers{Value: d.defaultValue}
	}
	return Layers{
		Value:         s.resolved,
		Source:        s.source,
		Local:         s.local,
		HasLocal:      s.has(layerLocal),
		CSS:           s.css,
		HasCSS:        s.has(layerCss),
		Inherited:     s.inherited,
		HasInherited:  s.has(layerInherited),
		InheritedFrom: s.inheritedFrom,
		Keyframe:      s.keyframe,
		HasKeyframe:   s.has(layerKeyframe),
	}
}

func (v *ViewBase) slot(d *Descriptor) *slot {
	s, ok := v.slots[d.key]
	if !ok {
		s = &slot{d: d, resolved: d.defaultValue}
		if v.slots == nil {
			v.slots = make(map[Key]*slot)
		}
		v.slots[d.key] = s
	}
	return s
}

// resolve computes the effective value of a slot, highest precedence
// first: keyframe (animation kinds only), local, CSS, inherited, default.
// Coercion applies to every source but the default.
func (v *ViewBase) resolve(s *slot) (any, ValueSource) {
	d := s.d
	var value any
	var source ValueSource
	switch {
	case d.kind == KindAnimation && s.has(layerKeyframe):
		value, source = s.keyframe, SourceKeyframe
	case s.has(layerLocal):
		value, source = s.local, SourceLocal
	case s.has(layerCss):
		value, source = s.css, SourceCss
	case s.has(layerInherited):
		value, source = s.inherited, SourceInherited
	default:
		return d.defaultValue, SourceDefault
	}
	if d.coerce != nil {
		value = d.coerce(v, value)
	}
	return value, source
}

// setLayer stores value in one layer of d and runs the change pipeline if
// the resolved value changed. It reports whether it changed.
func (v *ViewBase) setLayer(d *Descriptor, l layer, value any) bool {
	if d.kind == KindShorthand {
		panic(&errors.ConfigError{Property: d.name, Reason: "shorthands have no value of their own"})
	}
	s := v.slot(d)
	old := s.resolved
	s.store(l, value)
	return v.update(s, old)
}

// refresh re-resolves d without touching any layer.
func (v *ViewBase) refresh(d *Descriptor) bool {
	s := v.slot(d)
	return v.update(s, s.resolved)
}

// update re-resolves s and, when the value changed under the descriptor's
// comparer, runs in order: the ValueChanged callback, the native push,
// property listeners, the layout request, and inheritance propagation.
// Panics from callbacks reach the caller.
func (v *ViewBase) update(s *slot, old any) bool {
	value, source := v.resolve(s)
	s.source = source
	d := s.d
	if d.equal(old, value) {
		return false
	}
	s.resolved = value

	if d.valueChanged != nil {
		d.valueChanged(v, old, value)
		// A callback that set the property again already ran the rest of
		// the pipeline for the newer value.
		if !d.equal(s.resolved, value) {
			return true
		}
	}
	if v.suppressNative != d.key {
		v.pushNative(d, value)
	}
	v.notifyListeners(d, old, value)
	if d.affectsLayout {
		v.RequestLayout()
	}
	if d.kind.IsInherited() {
		v.propagateProperty(d)
	}
	return true
}

// Get returns the resolved value of the named property on v. The name is
// looked up on the view's class first and then among style properties.
func (v *ViewBase) Get(name string) (any, bool) {
	if d, ok := v.lookup(name); ok {
		return v.Value(d), true
	}
	if sh, ok := ShorthandByCSSName(name); ok && sh.getShorthand != nil {
		return sh.getShorthand(v.Style()), true
	}
	return nil, false
}

// Set assigns a local value to the named property. Text is converted with
// the property's converter; conversion failures are returned as
// *errors.ConversionError and leave the property unchanged. The text
// "unset" or "initial" removes the local value. Shorthand names expand
// into their longhands. An unknown name is a *errors.ConfigError.
func (v *ViewBase) Set(name string, value any) error {
	if d, ok := v.lookup(name); ok {
		if isUnsetText(value) {
			v.setLayer(d, layerLocal, UnsetValue)
			return nil
		}
		converted, err := d.Convert(value)
		if err != nil {
			return err
		}
		v.setLayer(d, layerLocal, converted)
		return nil
	}
	if sh, ok := ShorthandByCSSName(name); ok {
		if isUnsetText(value) {
			(&ShorthandProperty{d: sh}).Unset(v)
			return nil
		}
		return (&ShorthandProperty{d: sh}).Set(v, value)
	}
	return &errors.ConfigError{Property: name, Class: v.ClassName(), Reason: "not registered"}
}

// Lookup finds a property by its registered name on the view's class, or
// by its CSS name among style properties.
func (v *ViewBase) Lookup(name string) (*Descriptor, bool) { return v.lookup(name) }

func (v *ViewBase) lookup(name string) (*Descriptor, bool) {
	if v.class != nil {
		if d, ok := v.class.Lookup(name); ok {
			return d, true
		}
	}
	return PropertyByCSSName(name)
}
