package siggn

import (
	"errors"
	"fmt"
)

var (
	// ErrNextCalled is returned by a middleware continuation that was already invoked.
	ErrNextCalled = errors.New("siggn: next already called")
	// ErrListenerPanic indicates that a listener panicked during delivery.
	ErrListenerPanic = errors.New("siggn: listener panicked")
)

// ListenerPanicError wraps a panic raised by a listener together with the
// registration it came from and the stack trace.
type ListenerPanicError struct {
	// ID is the subscriber identity of the failing registration.
	ID string
	// Type is the discriminator of the message being delivered.
	Type string
	// PanicValue is the original value that was passed to panic().
	PanicValue any
	// StackTrace contains the full stack trace at the point of panic.
	StackTrace string
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("siggn: listener %q panicked on %q: %v", e.ID, e.Type, e.PanicValue)
}

func (e *ListenerPanicError) Unwrap() error {
	return ErrListenerPanic
}
