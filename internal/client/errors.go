package client

import "errors"

var (
	// ErrNotConnected is returned by Send when the transport is not open. The
	// client never queues commands across disconnects; the view decides
	// whether to surface a notice or call Reconnect.
	ErrNotConnected = errors.New("not connected")

	// ErrClosed is returned when an operation is attempted on a client that
	// was explicitly closed.
	ErrClosed = errors.New("client closed")
)
