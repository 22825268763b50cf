package core

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/go-drift/cascade/pkg/errors"
	"github.com/go-drift/cascade/pkg/layout"
)

// ViewID is a process-unique handle of a view. Views refer to each other
// by handle where a reference would keep a detached subtree alive.
type ViewID uint64

var lastViewID atomic.Uint64

// View is implemented by every view kind by embedding ViewBase.
type View interface {
	Base() *ViewBase
}

// ViewBase is the tree node every view kind embeds. It owns one slot per
// property that has ever been touched on it.
//
// Embed it and call Init from the constructor:
//
//	type Label struct {
//	    core.ViewBase
//	}
//
//	func NewLabel() *Label {
//	    l := &Label{}
//	    l.Init(l, LabelClass)
//	    return l
//	}
type ViewBase struct {
	handle   ViewID
	self     View
	class    *Class
	parent   *ViewBase
	children []*ViewBase
	depth    int

	id            string
	className     string
	pseudoClasses map[string]bool

	scope          StyleScope
	scopeInherited bool
	applied        appliedBag

	slots          map[Key]*slot
	style          Style
	peer           NativePeer
	suppressNative Key

	listeners      map[int]func(PropertyChangeEvent)
	nextListenerID int

	owner       *layout.PipelineOwner
	needsLayout bool
}

// NewView creates a bare view of the given class. class may be nil.
func NewView(class *Class) *ViewBase {
	v := &ViewBase{}
	v.Init(v, class)
	return v
}

// Init prepares an embedded ViewBase. self is the outer view.
func (v *ViewBase) Init(self View, class *Class) {
	v.handle = ViewID(lastViewID.Add(1))
	v.self = self
	v.class = class
	v.style.view = v
}

// Base returns v itself.
func (v *ViewBase) Base() *ViewBase { return v }

// Self returns the outer view that embeds v.
func (v *ViewBase) Self() View {
	if v.self == nil {
		return v
	}
	return v.self
}

// Handle returns the process-unique handle.
func (v *ViewBase) Handle() ViewID { return v.handle }

// Class returns the view's class.
func (v *ViewBase) Class() *Class { return v.class }

// ClassName returns the class name, or "View" for a view without a class.
func (v *ViewBase) ClassName() string {
	if v.class == nil {
		return "View"
	}
	return v.class.name
}

// Style returns the style facade holding the view's CSS properties.
func (v *ViewBase) Style() *Style { return &v.style }

// Depth returns the distance from the root (root = 0).
func (v *ViewBase) Depth() int { return v.depth }

func (v *ViewBase) String() string {
	if v.id != "" {
		return fmt.Sprintf("%s#%s<%d>", v.ClassName(), v.id, v.handle)
	}
	return fmt.Sprintf("%s<%d>", v.ClassName(), v.handle)
}

// Parent returns the parent view, or nil for a root.
func (v *ViewBase) Parent() View {
	if v.parent == nil {
		return nil
	}
	return v.parent.Self()
}

// Children returns the child views in order.
func (v *ViewBase) Children() []View {
	out := make([]View, len(v.children))
	for i, c := range v.children {
		out[i] = c.Self()
	}
	return out
}

// ChildCount returns the number of children.
func (v *ViewBase) ChildCount() int { return len(v.children) }

// EachChild calls fn for each child until fn returns false.
func (v *ViewBase) EachChild(fn func(View) bool) {
	for _, c := range slices.Clone(v.children) {
		if !fn(c.Self()) {
			return
		}
	}
}

// EachDescendant walks the subtree below v depth first, parents before
// children, until fn returns false.
func (v *ViewBase) EachDescendant(fn func(View) bool) {
	v.eachDescendant(fn)
}

func (v *ViewBase) eachDescendant(fn func(View) bool) bool {
	for _, c := range slices.Clone(v.children) {
		if !fn(c.Self()) {
			return false
		}
		if !c.eachDescendant(fn) {
			return false
		}
	}
	return true
}

// GetAncestor returns the nearest ancestor whose class is class or a
// subclass of it.
func (v *ViewBase) GetAncestor(class *Class) View {
	for cur := v.parent; cur != nil; cur = cur.parent {
		if cur.class != nil && cur.class.IsSubclassOf(class) {
			return cur.Self()
		}
	}
	return nil
}

// GetViewByID finds the first view in the subtree rooted at v, v
// included, with the given id.
func (v *ViewBase) GetViewByID(id string) View {
	if v.id == id {
		return v.Self()
	}
	var found View
	v.eachDescendant(func(c View) bool {
		if c.Base().id == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Root returns the topmost ancestor, or v itself.
func (v *ViewBase) Root() View {
	cur := v
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur.Self()
}

// AddView appends child to v.
func (v *ViewBase) AddView(child View) {
	v.InsertView(child, len(v.children))
}

// InsertView inserts child at index. The child inherits v's inherited
// properties, layout owner and style scope, and its subtree is restyled.
// Adding a view that already has a parent, or one that is v or an
// ancestor of v, panics.
func (v *ViewBase) InsertView(child View, index int) {
	c := child.Base()
	if c.parent != nil {
		panic(fmt.Sprintf("core: %s already has parent %s", c, c.parent))
	}
	for cur := v; cur != nil; cur = cur.parent {
		if cur == c {
			panic(fmt.Sprintf("core: adding %s under %s would create a cycle", c, v))
		}
	}
	index = max(0, min(index, len(v.children)))
	v.children = slices.Insert(v.children, index, c)
	c.parent = v
	c.setDepth(v.depth + 1)
	c.attachOwner(v.owner)

	inheritFrom(v, c, inheritedDescriptors())
	inheritFrom(v, c, inheritedCssDescriptors())

	if v.scope != nil {
		c.inheritScope(v.scope)
		if err := applyStyleToSubtree(c); err != nil {
			errors.Report(&errors.CascadeError{Op: "core.InsertView", Kind: errors.KindConversion, Err: err})
		}
	}
	v.RequestLayout()
}

// RemoveView detaches child from v. CSS values that came from a scope the
// child inherited are reset, and every inherited value is cleared.
func (v *ViewBase) RemoveView(child View) {
	c := child.Base()
	i := slices.Index(v.children, c)
	if i < 0 {
		return
	}
	v.children = slices.Delete(v.children, i, i+1)
	c.parent = nil
	c.setDepth(0)
	c.attachOwner(nil)

	if c.scopeInherited {
		c.dropInheritedScope()
	}
	ClearInheritedProperties(c)
	v.RequestLayout()
}

// RemoveChildren detaches every child of v.
func (v *ViewBase) RemoveChildren() {
	for _, c := range slices.Clone(v.children) {
		v.RemoveView(c)
	}
}

func (v *ViewBase) setDepth(depth int) {
	v.depth = depth
	for _, c := range v.children {
		c.setDepth(depth + 1)
	}
}

// SetPipelineOwner attaches a layout owner to v's subtree.
func (v *ViewBase) SetPipelineOwner(owner *layout.PipelineOwner) {
	v.attachOwner(owner)
}

func (v *ViewBase) attachOwner(owner *layout.PipelineOwner) {
	v.owner = owner
	if owner != nil && v.needsLayout {
		owner.ScheduleLayout(v)
	}
	for _, c := range v.children {
		c.attachOwner(owner)
	}
}

// RequestLayout marks v and its ancestors as needing layout and
// schedules them with the pipeline owner. A parent lays out its children,
// so a child's size change invalidates it too.
func (v *ViewBase) RequestLayout() {
	if v.needsLayout {
		return
	}
	v.needsLayout = true
	if v.owner != nil {
		v.owner.ScheduleLayout(v)
	}
	if v.parent != nil {
		v.parent.RequestLayout()
	}
}

// NeedsLayout reports whether v requested layout since its last pass.
func (v *ViewBase) NeedsLayout() bool { return v.needsLayout }

// LayoutHandler is implemented by view kinds that measure themselves.
type LayoutHandler interface {
	OnLayout()
}

// PerformLayout clears the layout request and runs the view's OnLayout
// when it has one.
func (v *ViewBase) PerformLayout() {
	v.needsLayout = false
	if h, ok := v.Self().(LayoutHandler); ok {
		h.OnLayout()
	}
}

// PropertyChangeEvent describes a change of a resolved value.
type PropertyChangeEvent struct {
	View     View
	Property *Descriptor
	OldValue any
	NewValue any
}

// AddPropertyListener calls fn after every resolved value change on v.
// The returned function removes the listener.
func (v *ViewBase) AddPropertyListener(fn func(PropertyChangeEvent)) func() {
	if v.listeners == nil {
		v.listeners = make(map[int]func(PropertyChangeEvent))
	}
	id := v.nextListenerID
	v.nextListenerID++
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}

func (v *ViewBase) notifyListeners(d *Descriptor, oldValue, newValue any) {
	if len(v.listeners) == 0 {
		return
	}
	event := PropertyChangeEvent{View: v.Self(), Property: d, OldValue: oldValue, NewValue: newValue}
	for _, id := range slices.Sorted(maps.Keys(v.listeners)) {
		if fn, ok := v.listeners[id]; ok {
			fn(event)
		}
	}
}

// Style is the CSS facade of a view. It shares the view's storage; a
// style property set through either is the same value.
type Style struct {
	view *ViewBase
}

// View returns the owning view.
func (s *Style) View() View { return s.view.Self() }

// Get returns the resolved value of a style property.
func (s *Style) Get(p Registrable) any { return s.view.Value(p.Descriptor()) }

// Set assigns a local value to the style property with the given CSS
// name or property name.
func (s *Style) Set(name string, value any) error {
	return s.view.Set(name, value)
}

// Parent returns the parent view's style, or nil.
func (s *Style) Parent() *Style {
	if s.view.parent == nil {
		return nil
	}
	return s.view.parent.Style()
}
