package gate

import (
	"errors"
	"fmt"
)

// ProtocolError reports a signal arriving in a state that does not accept
// it, or a commit attempted without its prerequisites. The engine state is
// left unchanged when one is returned.
type ProtocolError struct {
	State  State
	Signal string
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("protocol violation: %v in state %v: %v", e.Signal, e.State, e.Reason)
	}
	return fmt.Sprintf("protocol violation: %v not accepted in state %v", e.Signal, e.State)
}

// NewProtocolError creates a protocol error for a signal/state mismatch.
func NewProtocolError(state State, signal string) *ProtocolError {
	return &ProtocolError{State: state, Signal: signal}
}

// IsProtocolError reports whether err is (or wraps) a *ProtocolError.
func IsProtocolError(err error) bool {
	var target *ProtocolError
	return errors.As(err, &target)
}
