package platform

import (
	"encoding/json"
	"sync"
)

// RecordedCall is one call a TestBridge received.
type RecordedCall struct {
	Channel string
	Method  string
	Args    map[string]any
}

// TestBridge is a NativeBridge that records calls and answers them from
// a configurable handler.
type TestBridge struct {
	mu    sync.Mutex
	calls []RecordedCall

	// Respond, when set, computes the result of a call. A nil Respond
	// answers every call with nil.
	Respond func(call RecordedCall) (any, error)
}

// InvokeMethod records the call and returns the encoded response.
func (b *TestBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	var decoded map[string]any
	if len(args) > 0 {
		_ = json.Unmarshal(args, &decoded)
	}
	call := RecordedCall{Channel: channel, Method: method, Args: decoded}

	b.mu.Lock()
	b.calls = append(b.calls, call)
	respond := b.Respond
	b.mu.Unlock()

	if respond == nil {
		return DefaultCodec.Encode(nil)
	}
	result, err := respond(call)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Encode(result)
}

// Calls returns the recorded calls, optionally filtered by method.
func (b *TestBridge) Calls(method string) []RecordedCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []RecordedCall
	for _, c := range b.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets the recorded calls.
func (b *TestBridge) Reset() {
	b.mu.Lock()
	b.calls = nil
	b.mu.Unlock()
}

// SetupTestBridge installs a recording native bridge and a synchronous
// dispatch function for testing. The cleanup function should be
// testing.T.Cleanup or equivalent; it registers a teardown that calls
// ResetForTest.
//
//	bridge := platform.SetupTestBridge(t.Cleanup)
func SetupTestBridge(cleanup func(func())) *TestBridge {
	bridge := &TestBridge{}
	SetNativeBridge(bridge)
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
	return bridge
}
