package devlink

import (
	"errors"
	"fmt"
)

// ErrSessionEnded reports that the transport disconnected while a call
// was waiting for its reply. It is the cause of the panic raised by a
// call-style client method interrupted by Close on another goroutine.
var ErrSessionEnded = errors.New("devlink: session ended")

// InitError reports a failure to initialize a session.
//
// Today the only producer is executor construction, but the type is a
// category, not a closed set: future variants wrap their cause the same
// way and callers keep working through errors.Is/errors.As. Any InitError
// is fatal to startup; there is no partial session to salvage.
type InitError struct {
	// Backend is the executor backend that was being constructed, or
	// empty when selection itself failed.
	Backend string
	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *InitError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("devlink: init failed (backend %q): %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("devlink: init failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *InitError) Unwrap() error { return e.Err }

// ProtocolError reports a violated protocol invariant: a reply arrived
// whose variant does not match the call that was waiting for it. The two
// sides have desynchronized, which is a bug in this package or in a
// transport substitute, never a runtime condition. It is raised as a
// panic value so the session aborts loudly instead of continuing with
// misattributed handles.
type ProtocolError struct {
	// Want is the reply type the pending call expected.
	Want ReplyType
	// Got is the reply type that actually arrived.
	Got ReplyType
}

// Error implements error.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("devlink: protocol violation: got %s reply, want %s", e.Got, e.Want)
}
