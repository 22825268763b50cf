package core

import (
	"fmt"

	"github.com/go-drift/cascade/pkg/errors"
)

// Class is the accessor table of one view kind. Subclasses see every
// property registered on their ancestors.
//
// Classes are set up at package initialization, before any view of the
// class exists:
//
//	var LabelClass = core.NewClass("Label", TextBaseClass)
//
//	func init() {
//	    LabelClass.MustRegister(textWrapProperty)
//	    LabelClass.NativeBacked(textWrapProperty)
//	}
type Class struct {
	name   string
	parent *Class
	byName map[string]*Descriptor
	order  []*Descriptor
	native map[Key]bool
}

// NewClass creates a class. parent may be nil.
func NewClass(name string, parent *Class) *Class {
	return &Class{
		name:   name,
		parent: parent,
		byName: make(map[string]*Descriptor),
		native: make(map[Key]bool),
	}
}

// Name returns the class name, which is also its CSS type selector.
func (c *Class) Name() string { return c.name }

// Parent returns the superclass, or nil.
func (c *Class) Parent() *Class { return c.parent }

func (c *Class) String() string { return c.name }

// IsSubclassOf reports whether c is other or descends from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Register adds a property to the class. A name that is already
// registered on the class or any ancestor is a configuration error.
func (c *Class) Register(p Registrable) error {
	d := p.Descriptor()
	if d == nil {
		return &errors.ConfigError{Class: c.name, Reason: "nil descriptor"}
	}
	for cur := c; cur != nil; cur = cur.parent {
		if prev, ok := cur.byName[d.name]; ok {
			reason := "already registered"
			if cur != c {
				reason = fmt.Sprintf("already registered on ancestor %s", cur.name)
			}
			if prev != d {
				reason = "name " + reason + " by another descriptor"
			}
			return &errors.ConfigError{Property: d.name, Class: c.name, Reason: reason}
		}
	}
	c.byName[d.name] = d
	c.order = append(c.order, d)
	d.registered.Store(true)
	return nil
}

// MustRegister registers each property and panics on the first error.
func (c *Class) MustRegister(props ...Registrable) {
	for _, p := range props {
		if err := c.Register(p); err != nil {
			panic(err)
		}
	}
}

// NativeBacked marks properties as having a native counterpart on views
// of this class and its subclasses. Their resolved values are pushed to
// the native peer.
func (c *Class) NativeBacked(props ...Registrable) {
	for _, p := range props {
		d := p.Descriptor()
		if d.kind == KindShorthand {
			panic(&errors.ConfigError{Property: d.name, Class: c.name, Reason: "shorthands cannot be native backed"})
		}
		c.native[d.key] = true
	}
}

// IsNativeBacked reports whether d has a native counterpart on this class.
func (c *Class) IsNativeBacked(d *Descriptor) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.native[d.key] {
			return true
		}
	}
	return false
}

// Lookup finds a registered property by name along the class chain.
func (c *Class) Lookup(name string) (*Descriptor, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if d, ok := cur.byName[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Properties lists the registered properties of the whole chain, base
// class first.
func (c *Class) Properties() []*Descriptor {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	var out []*Descriptor
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].order...)
	}
	return out
}

// NativeProperties lists every native-backed descriptor of the chain in
// key order.
func (c *Class) NativeProperties() []*Descriptor {
	var out []*Descriptor
	for _, d := range Descriptors() {
		if c.IsNativeBacked(d) {
			out = append(out, d)
		}
	}
	return out
}
