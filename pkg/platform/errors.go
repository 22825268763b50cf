package platform

import "errors"

// ErrDisposed is returned when pushing to a peer that was disposed.
var ErrDisposed = errors.New("platform: peer disposed")
