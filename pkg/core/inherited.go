package core

import "slices"

// PropagateInheritableProperties pushes every inherited view property of
// v down to v's children. A child whose resolved value changes passes it
// on to its own children; a child that shadows the property keeps its
// value and stops the walk for that property only.
func PropagateInheritableProperties(v View) {
	base := v.Base()
	descriptors := inheritedDescriptors()
	for _, c := range slices.Clone(base.children) {
		inheritFrom(base, c, descriptors)
	}
}

// PropagateInheritableCssProperties pushes every inherited style property
// of s down to the styles of its view's children.
func PropagateInheritableCssProperties(s *Style) {
	base := s.view
	descriptors := inheritedCssDescriptors()
	for _, c := range slices.Clone(base.children) {
		inheritFrom(base, c, descriptors)
	}
}

// ClearInheritedProperties drops the inherited layer of every inherited
// property on v. Descendants that relied on those values see the change
// through normal propagation.
func ClearInheritedProperties(v View) {
	base := v.Base()
	for _, descriptors := range [][]*Descriptor{inheritedDescriptors(), inheritedCssDescriptors()} {
		for _, d := range descriptors {
			if s, ok := base.slots[d.key]; ok && s.has(layerInherited) {
				base.setLayer(d, layerInherited, UnsetValue)
			}
		}
	}
}

func inheritFrom(parent, child *ViewBase, descriptors []*Descriptor) {
	for _, d := range descriptors {
		child.inherit(d, parent)
	}
}

// propagateProperty pushes one inherited property of v to its children.
func (v *ViewBase) propagateProperty(d *Descriptor) {
	for _, c := range slices.Clone(v.children) {
		if c.parent != v {
			continue
		}
		c.inherit(d, v)
	}
}

// inherit sets the inherited layer of d on v from parent. A parent that
// resolves to its default supplies nothing, so the layer is cleared.
func (v *ViewBase) inherit(d *Descriptor, parent *ViewBase) {
	if parent.Source(d) == SourceDefault {
		if s, ok := v.slots[d.key]; ok && s.has(layerInherited) {
			v.setLayer(d, layerInherited, UnsetValue)
		}
		return
	}
	s := v.slot(d)
	s.inheritedFrom = parent.handle
	v.setLayer(d, layerInherited, parent.Value(d))
}
