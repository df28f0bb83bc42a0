package client

// State is the lifecycle state of a session client's transport handle.
type State int

const (
	// StateDisconnected means no connection attempt has succeeded yet.
	StateDisconnected State = iota

	// StateOpen means the transport is established and commands can be sent.
	StateOpen

	// StateClosed means the transport closed; a new session requires Reconnect.
	StateClosed
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
