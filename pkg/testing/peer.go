package testing

import (
	"fmt"

	"github.com/go-drift/cascade/pkg/core"
)

// Push is one value a FakePeer received.
type Push struct {
	Property string
	Value    any
}

func (p Push) String() string { return fmt.Sprintf("%s=%v", p.Property, p.Value) }

// FakePeer is an in-memory core.NativePeer keyed by property name.
type FakePeer struct {
	// Values holds the last value pushed per property.
	Values map[string]any
	// Defaults is served from DefaultValue.
	Defaults map[string]any
	// Fail makes pushes of the named properties return the error.
	Fail map[string]error
	// Pushes lists every successful push in order.
	Pushes []Push
}

// NewFakePeer returns an empty peer.
func NewFakePeer() *FakePeer {
	return &FakePeer{
		Values:   make(map[string]any),
		Defaults: make(map[string]any),
		Fail:     make(map[string]error),
	}
}

// DefaultValue implements core.NativePeer.
func (p *FakePeer) DefaultValue(d *core.Descriptor) (any, bool) {
	v, ok := p.Defaults[d.Name()]
	return v, ok
}

// SetValue implements core.NativePeer.
func (p *FakePeer) SetValue(d *core.Descriptor, value any) error {
	if err := p.Fail[d.Name()]; err != nil {
		return err
	}
	p.Values[d.Name()] = value
	p.Pushes = append(p.Pushes, Push{Property: d.Name(), Value: value})
	return nil
}

// Value returns the last value pushed for the named property.
func (p *FakePeer) Value(name string) any { return p.Values[name] }

// PushesOf returns the values pushed for the named property in order.
func (p *FakePeer) PushesOf(name string) []any {
	var out []any
	for _, push := range p.Pushes {
		if push.Property == name {
			out = append(out, push.Value)
		}
	}
	return out
}

// ClearPushes forgets the push history but keeps Values.
func (p *FakePeer) ClearPushes() { p.Pushes = nil }

var _ core.NativePeer = (*FakePeer)(nil)

// Tree adds children to parent in order and returns parent.
func Tree(parent core.View, children ...core.View) core.View {
	for _, c := range children {
		parent.Base().AddView(c)
	}
	return parent
}

// Recorder collects the change events of one view.
type Recorder struct {
	Events []core.PropertyChangeEvent
	stop   func()
}

// Record starts recording the change events of v.
func Record(v core.View) *Recorder {
	r := &Recorder{}
	r.stop = v.Base().AddPropertyListener(func(e core.PropertyChangeEvent) {
		r.Events = append(r.Events, e)
	})
	return r
}

// Names returns the property names of the recorded events in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Property.Name()
	}
	return out
}

// Stop removes the listener.
func (r *Recorder) Stop() { r.stop() }
