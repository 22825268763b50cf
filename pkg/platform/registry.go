package platform

import (
	"sync"

	"github.com/go-drift/cascade/pkg/errors"
)

// channelRegistry holds every method channel by name.
type channelRegistry struct {
	channels map[string]*MethodChannel
	mu       sync.RWMutex
}

var registry = &channelRegistry{
	channels: make(map[string]*MethodChannel),
}

func (r *channelRegistry) register(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.channels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) get(name string) *MethodChannel {
	r.mu.RLock()
	ch := r.channels[name]
	r.mu.RUnlock()
	return ch
}

// NativeBridge is the host's entry point into native code.
type NativeBridge interface {
	// InvokeMethod calls a method on the native side with encoded arguments
	// and returns the encoded result.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

var (
	bridgeMu     sync.RWMutex
	nativeBridge NativeBridge
)

// SetNativeBridge installs the native bridge. Called once by the host
// during initialization.
func SetNativeBridge(bridge NativeBridge) {
	bridgeMu.Lock()
	nativeBridge = bridge
	bridgeMu.Unlock()
}

func currentBridge() NativeBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return nativeBridge
}

// invokeNative encodes args, calls native and decodes the result.
func invokeNative(channel, method string, args any) (any, error) {
	bridge := currentBridge()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}

	argsData, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, err
	}

	resultData, err := bridge.InvokeMethod(channel, method, argsData)
	if err != nil {
		return nil, err
	}

	return DefaultCodec.Decode(resultData)
}

// HandleMethodCall is called from the host when native invokes a Go
// method. A panicking handler is reported and turned into an error so it
// never unwinds into native code.
func HandleMethodCall(channel, method string, argsData []byte) (result []byte, err error) {
	ch := registry.get(channel)
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "platform.HandleMethodCall",
				Value:      r,
				StackTrace: errors.CaptureStack(),
			})
			result, err = nil, NewChannelError("panic", "handler panicked")
		}
	}()

	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}

	value, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}

	return DefaultCodec.Encode(value)
}

// ResetForTest clears the bridge, the dispatch function and every live
// peer. It should only be called from tests.
func ResetForTest() {
	SetNativeBridge(nil)
	RegisterDispatch(nil)
	if peers != nil {
		peers.mu.Lock()
		peers.views = make(map[int64]*ChannelPeer)
		peers.mu.Unlock()
		peers.nextID.Store(0)
	}
}
