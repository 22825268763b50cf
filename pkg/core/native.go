package core

import "github.com/go-drift/cascade/pkg/errors"

// NativePeer is the platform widget a view's native-backed properties are
// pushed to.
type NativePeer interface {
	// DefaultValue returns the platform's own value for d before any push.
	DefaultValue(d *Descriptor) (any, bool)
	// SetValue applies a resolved value to the platform widget.
	SetValue(d *Descriptor, value any) error
}

// NativePeer returns the attached peer, or nil.
func (v *ViewBase) NativePeer() NativePeer { return v.peer }

// InitNativeView attaches peer to v and pushes the resolved value of every
// native-backed property, defaults included. The platform default of each
// property is captured the first time so ResetNativeView can restore it.
// Calling it again with the same peer re-pushes every value; a different
// peer replaces the current one after resetting it.
func InitNativeView(v View, peer NativePeer) {
	base := v.Base()
	if peer == nil {
		return
	}
	if base.peer != nil && base.peer != peer {
		ResetNativeView(v)
	}
	base.peer = peer
	if base.class == nil {
		return
	}
	for _, d := range base.class.NativeProperties() {
		s := base.slot(d)
		if !s.hasNativeDefault {
			if value, ok := peer.DefaultValue(d); ok {
				s.nativeDefault = value
				s.hasNativeDefault = true
			}
		}
		base.pushNative(d, s.resolved)
	}
}

// ResetNativeView restores the platform default of every native-backed
// property on the attached peer and detaches it. Without a peer it does
// nothing.
func ResetNativeView(v View) {
	base := v.Base()
	peer := base.peer
	if peer == nil {
		return
	}
	if base.class != nil {
		for _, d := range base.class.NativeProperties() {
			value := d.defaultValue
			if s, ok := base.slots[d.key]; ok && s.hasNativeDefault {
				value = s.nativeDefault
				s.nativeDefault = nil
				s.hasNativeDefault = false
			}
			if err := peer.SetValue(d, value); err != nil {
				reportNative("core.ResetNativeView", d, err)
			}
		}
	}
	base.peer = nil
}

// SetFromNative records a value the platform widget changed on its own
// (a slider dragged by the user) as the local value. The value is pushed
// back to the peer only when it resolves to something else, such as a
// coerced or clamped value.
func (v *ViewBase) SetFromNative(d *Descriptor, value any) error {
	converted, err := d.Convert(value)
	if err != nil {
		return err
	}
	prev := v.suppressNative
	v.suppressNative = d.key
	func() {
		defer func() { v.suppressNative = prev }()
		v.setLayer(d, layerLocal, converted)
	}()
	if resolved := v.Value(d); !d.equal(resolved, converted) {
		v.pushNative(d, resolved)
	}
	return nil
}

func (v *ViewBase) pushNative(d *Descriptor, value any) {
	if v.peer == nil || v.class == nil || !v.class.IsNativeBacked(d) {
		return
	}
	if err := v.peer.SetValue(d, value); err != nil {
		reportNative("core.pushNative", d, err)
	}
}

func reportNative(op string, d *Descriptor, err error) {
	errors.Report(&errors.CascadeError{
		Op:         op,
		Kind:       errors.KindPlatform,
		Property:   d.name,
		Err:        err,
		StackTrace: errors.CaptureStack(),
	})
}
