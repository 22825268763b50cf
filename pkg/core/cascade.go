package core

import (
	stderrors "errors"
	"maps"
	"slices"
	"strings"

	"github.com/go-drift/cascade/pkg/errors"
)

// Declaration is one matched CSS declaration. Value is CSS text, a typed
// value, or UnsetValue.
type Declaration struct {
	Property string
	Value    any
}

// StyleScope yields the declarations that apply to a view, already in
// precedence order: a later declaration for the same property wins.
type StyleScope interface {
	Match(v View) []Declaration
}

// StyleScopeFunc adapts a function to StyleScope.
type StyleScopeFunc func(v View) []Declaration

// Match calls f(v).
func (f StyleScopeFunc) Match(v View) []Declaration { return f(v) }

// appliedEntry is one CSS value the cascade set on a view. origin is the
// declaration name that produced it, which differs from the property name
// for shorthand expansions.
type appliedEntry struct {
	d      *Descriptor
	value  any
	origin string
}

// appliedBag is the set of CSS values from the last cascade pass, in
// application order.
type appliedBag struct {
	order   []Key
	entries map[Key]appliedEntry
}

func (b *appliedBag) get(k Key) (appliedEntry, bool) {
	e, ok := b.entries[k]
	return e, ok
}

func (b *appliedBag) put(e appliedEntry) {
	if b.entries == nil {
		b.entries = make(map[Key]appliedEntry)
	}
	if _, ok := b.entries[e.d.key]; ok {
		b.order = slices.DeleteFunc(b.order, func(k Key) bool { return k == e.d.key })
	}
	b.entries[e.d.key] = e
	b.order = append(b.order, e.d.key)
}

func (b *appliedBag) remove(k Key) {
	if _, ok := b.entries[k]; !ok {
		return
	}
	delete(b.entries, k)
	b.order = slices.DeleteFunc(b.order, func(o Key) bool { return o == k })
}

// SetStyleScope sets v's own style scope and restyles its subtree.
// Descendants without a scope of their own use it too. Passing nil
// removes the scope.
func (v *ViewBase) SetStyleScope(scope StyleScope) error {
	if scope == nil {
		v.scope = nil
		v.scopeInherited = false
		v.walk(func(n *ViewBase) bool {
			if n != v && !n.scopeInherited {
				return false
			}
			n.scope = nil
			n.scopeInherited = false
			ResetCSSProperties(n.Style())
			return true
		})
		return nil
	}
	v.scope = scope
	v.scopeInherited = false
	for _, c := range v.children {
		c.inheritScope(scope)
	}
	return applyStyleToSubtree(v)
}

// StyleScope returns the scope styling v, or nil.
func (v *ViewBase) StyleScope() StyleScope { return v.scope }

// inheritScope gives scope to v and every descendant that has no scope of
// its own.
func (v *ViewBase) inheritScope(scope StyleScope) {
	if v.scope != nil && !v.scopeInherited {
		return
	}
	v.scope = scope
	v.scopeInherited = true
	for _, c := range v.children {
		c.inheritScope(scope)
	}
}

// dropInheritedScope resets CSS values on every view in v's subtree whose
// scope was inherited, and forgets the scope.
func (v *ViewBase) dropInheritedScope() {
	v.walk(func(n *ViewBase) bool {
		if !n.scopeInherited {
			return false
		}
		ResetCSSProperties(n.Style())
		n.scope = nil
		n.scopeInherited = false
		return true
	})
}

// walk visits v and its descendants, parents first. Returning false skips
// the children of the visited view.
func (v *ViewBase) walk(fn func(*ViewBase) bool) {
	if !fn(v) {
		return
	}
	for _, c := range slices.Clone(v.children) {
		c.walk(fn)
	}
}

func applyStyleToSubtree(v *ViewBase) error {
	var errs []error
	v.walk(func(n *ViewBase) bool {
		if n.scope == nil {
			return true
		}
		if err := ApplyStyleFromScope(n); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return stderrors.Join(errs...)
}

// ApplyStyleFromScope matches v against its style scope and applies the
// result with ApplyDeclarations. A view without a scope has every CSS
// value it holds reset.
func ApplyStyleFromScope(v View) error {
	base := v.Base()
	var decls []Declaration
	if base.scope != nil {
		decls = base.scope.Match(base.Self())
	}
	return ApplyDeclarations(v, decls)
}

// ApplyDeclarations replaces the CSS values of v with decls.
//
// Every property set by the previous pass but absent from decls is reset
// first; only then are the new values set, so a property present in both
// passes moves directly from its old value to its new one. A declaration
// whose value cannot be converted is reported in the returned error and
// its property keeps its previous CSS value. Unknown property names are
// ignored.
func ApplyDeclarations(v View, decls []Declaration) error {
	base := v.Base()
	old := base.applied
	next, errs := base.buildBag(decls, &old)

	for _, k := range slices.Clone(old.order) {
		if _, ok := next.get(k); ok {
			continue
		}
		e, _ := old.get(k)
		debugf("reset %s on %s", e.d.name, base)
		base.setLayer(e.d, layerCss, UnsetValue)
	}

	for _, k := range next.order {
		e, _ := next.get(k)
		if prev, ok := old.get(k); ok && e.d.equal(prev.value, e.value) {
			if s, ok := base.slots[k]; ok && s.has(layerCss) {
				continue
			}
		}
		debugf("set %s=%v on %s", e.d.name, e.value, base)
		base.setLayer(e.d, layerCss, e.value)
	}
	base.applied = next
	return stderrors.Join(errs...)
}

// buildBag converts decls into the next applied set. On a conversion
// failure the previous entries that came from the same declaration are
// carried over unchanged.
func (v *ViewBase) buildBag(decls []Declaration, old *appliedBag) (appliedBag, []error) {
	var next appliedBag
	var errs []error
	keep := func(origin string, keys ...Key) {
		for _, k := range old.order {
			e, _ := old.get(k)
			if e.origin == origin || slices.Contains(keys, k) {
				if _, ok := next.get(k); !ok {
					next.put(e)
				}
			}
		}
	}
	for _, decl := range decls {
		name := decl.Property
		if sh, ok := ShorthandByCSSName(name); ok {
			if isUnsetText(decl.Value) {
				for _, k := range slices.Clone(next.order) {
					if e, _ := next.get(k); e.origin == name {
						next.remove(k)
					}
				}
				continue
			}
			pairs, err := expandShorthand(sh, decl.Value)
			if err != nil {
				errs = append(errs, err)
				keep(name)
				continue
			}
			for _, p := range pairs {
				next.put(appliedEntry{d: p.d, value: p.value, origin: name})
			}
			continue
		}
		d, ok := v.lookup(name)
		if !ok {
			debugf("ignoring unknown property %q on %s", name, v)
			continue
		}
		if isUnsetText(decl.Value) {
			next.remove(d.key)
			continue
		}
		value, err := d.Convert(decl.Value)
		if err != nil {
			errs = append(errs, err)
			keep(name, d.key)
			continue
		}
		next.put(appliedEntry{d: d, value: value, origin: name})
	}
	return next, errs
}

func isUnsetText(value any) bool {
	if value == UnsetValue {
		return true
	}
	if s, ok := value.(string); ok {
		s = strings.ToLower(strings.TrimSpace(s))
		return s == "unset" || s == "initial"
	}
	return false
}

// ResetCSSProperties clears every CSS value on s. Local values are not
// touched.
func ResetCSSProperties(s *Style) {
	v := s.view
	keys := slices.Sorted(maps.Keys(v.slots))
	for _, k := range keys {
		if sl := v.slots[k]; sl.has(layerCss) {
			v.setLayer(sl.d, layerCss, UnsetValue)
		}
	}
	v.applied = appliedBag{}
}

// ID returns the view's CSS id.
func (v *ViewBase) ID() string { return v.id }

// SetID changes the CSS id and restyles the subtree.
func (v *ViewBase) SetID(id string) {
	if v.id == id {
		return
	}
	v.id = id
	v.restyle("core.SetID")
}

// CSSClasses returns the space separated CSS classes.
func (v *ViewBase) CSSClasses() string { return v.className }

// HasCSSClass reports whether name is one of the view's CSS classes.
func (v *ViewBase) HasCSSClass(name string) bool {
	return slices.Contains(strings.Fields(v.className), name)
}

// SetCSSClasses replaces the CSS classes and restyles the subtree.
func (v *ViewBase) SetCSSClasses(classes string) {
	classes = strings.Join(strings.Fields(classes), " ")
	if v.className == classes {
		return
	}
	v.className = classes
	v.restyle("core.SetCSSClasses")
}

// HasPseudoClass reports whether the pseudo class is active.
func (v *ViewBase) HasPseudoClass(name string) bool { return v.pseudoClasses[name] }

// AddPseudoClass activates a pseudo class such as "pressed" and restyles
// the subtree.
func (v *ViewBase) AddPseudoClass(name string) {
	if v.pseudoClasses[name] {
		return
	}
	if v.pseudoClasses == nil {
		v.pseudoClasses = make(map[string]bool)
	}
	v.pseudoClasses[name] = true
	v.restyle("core.AddPseudoClass")
}

// DeletePseudoClass deactivates a pseudo class and restyles the subtree.
func (v *ViewBase) DeletePseudoClass(name string) {
	if !v.pseudoClasses[name] {
		return
	}
	delete(v.pseudoClasses, name)
	v.restyle("core.DeletePseudoClass")
}

func (v *ViewBase) restyle(op string) {
	if v.scope == nil {
		return
	}
	if err := applyStyleToSubtree(v); err != nil {
		errors.Report(&errors.CascadeError{Op: op, Kind: errors.KindConversion, Err: err})
	}
}
