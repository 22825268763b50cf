package platform

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-drift/cascade/pkg/core"
	"github.com/go-drift/cascade/pkg/errors"
)

// NativeViewsChannel carries peer lifecycle and property traffic.
const NativeViewsChannel = "cascade/native_views"

// PeerRegistry creates native widgets for views and routes their changes
// back to the owning view.
type PeerRegistry struct {
	views   map[int64]*ChannelPeer
	nextID  atomic.Int64
	mu      sync.RWMutex
	channel *MethodChannel
}

var (
	peersOnce sync.Once
	peers     *PeerRegistry
)

// Peers returns the process-wide peer registry.
func Peers() *PeerRegistry {
	peersOnce.Do(func() { peers = newPeerRegistry() })
	return peers
}

func newPeerRegistry() *PeerRegistry {
	r := &PeerRegistry{
		views:   make(map[int64]*ChannelPeer),
		channel: NewMethodChannel(NativeViewsChannel),
	}
	r.channel.SetHandler(r.handleMethodCall)
	return r
}

// Create asks native code for a widget of viewType and attaches it to view.
// Every native-backed property of the view is pushed once the widget
// exists.
func (r *PeerRegistry) Create(viewType string, view core.View) (*ChannelPeer, error) {
	id := r.nextID.Add(1)
	_, err := r.channel.Invoke("create", map[string]any{
		"viewId":   id,
		"viewType": viewType,
	})
	if err != nil {
		return nil, err
	}

	peer := &ChannelPeer{id: id, view: view, channel: r.channel}
	r.mu.Lock()
	r.views[id] = peer
	r.mu.Unlock()

	core.InitNativeView(view, peer)
	return peer, nil
}

// Dispose restores the native defaults of the view behind id, detaches it
// and destroys the native widget.
func (r *PeerRegistry) Dispose(id int64) error {
	r.mu.Lock()
	peer, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return ErrViewNotFound
	}

	core.ResetNativeView(peer.view)
	peer.disposed.Store(true)
	_, err := r.channel.Invoke("dispose", map[string]any{"viewId": id})
	return err
}

// Get returns the peer with the given id, or nil.
func (r *PeerRegistry) Get(id int64) *ChannelPeer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.views[id]
}

// Len reports the number of live peers.
func (r *PeerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

func (r *PeerRegistry) handleMethodCall(method string, args any) (any, error) {
	switch method {
	case "onValueChanged":
		return nil, r.handleValueChanged(args)
	default:
		return nil, ErrMethodNotFound
	}
}

// handleValueChanged applies {viewId, property, value} as a local value on
// the UI thread.
func (r *PeerRegistry) handleValueChanged(args any) error {
	argsMap, ok := args.(map[string]any)
	if !ok {
		return ErrInvalidArguments
	}
	id, ok := toInt64(argsMap["viewId"])
	if !ok {
		return ErrInvalidArguments
	}
	name, _ := argsMap["property"].(string)
	if name == "" {
		return ErrInvalidArguments
	}
	peer := r.Get(id)
	if peer == nil {
		return ErrViewNotFound
	}
	value := argsMap["value"]

	if !Dispatch(func() { peer.applyFromNative(name, value) }) {
		return ErrPlatformUnavailable
	}
	return nil
}

// ChannelPeer is a native widget reached through the native views channel.
type ChannelPeer struct {
	id       int64
	view     core.View
	channel  *MethodChannel
	disposed atomic.Bool
}

// ViewID returns the id shared with native code.
func (p *ChannelPeer) ViewID() int64 { return p.id }

// View returns the view the peer belongs to.
func (p *ChannelPeer) View() core.View { return p.view }

// DefaultValue asks native code for the widget's own value of d.
func (p *ChannelPeer) DefaultValue(d *core.Descriptor) (any, bool) {
	if p.disposed.Load() {
		return nil, false
	}
	result, err := p.channel.Invoke("getDefault", map[string]any{
		"viewId":   p.id,
		"property": d.Name(),
	})
	if err != nil || result == nil {
		return nil, false
	}
	converted, err := convertNative(d, result)
	if err != nil {
		return nil, false
	}
	return converted, true
}

// SetValue pushes a resolved value to the native widget.
func (p *ChannelPeer) SetValue(d *core.Descriptor, value any) error {
	if p.disposed.Load() {
		return ErrDisposed
	}
	_, err := p.channel.Invoke("setProperty", map[string]any{
		"viewId":   p.id,
		"property": d.Name(),
		"value":    encodeValue(value),
	})
	return err
}

func (p *ChannelPeer) applyFromNative(name string, value any) {
	base := p.view.Base()
	d, ok := base.Lookup(name)
	if !ok {
		errors.Report(&errors.CascadeError{
			Op:       "platform.onValueChanged",
			Kind:     errors.KindPlatform,
			Property: name,
			Err:      fmt.Errorf("%s has no property %q", base.ClassName(), name),
		})
		return
	}
	converted, err := convertNative(d, value)
	if err == nil {
		err = base.SetFromNative(d, converted)
	}
	if err != nil {
		errors.Report(&errors.CascadeError{
			Op:       "platform.onValueChanged",
			Kind:     errors.KindConversion,
			Property: name,
			Err:      err,
		})
	}
}

// convertNative accepts a decoded JSON value for d. JSON numbers decode
// as float64, so non-string values that do not fit the property type are
// retried as text.
func convertNative(d *core.Descriptor, value any) (any, error) {
	converted, err := d.Convert(value)
	if err == nil {
		return converted, nil
	}
	if _, isText := value.(string); isText || value == nil {
		return nil, err
	}
	return d.Convert(fmt.Sprint(value))
}

// encodeValue turns a property value into something JSON can carry.
// Colors, lengths and other text-formatted values are sent as text.
func encodeValue(value any) any {
	switch v := value.(type) {
	case nil, bool, string, float64, float32, int, int32, int64, uint32:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
