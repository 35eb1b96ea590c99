package middleware

import "errors"

var (
	// ErrInvalidMessage is returned by Validate for messages that fail validation.
	ErrInvalidMessage = errors.New("siggn: invalid message")
	// ErrThrottled is returned by Throttle in wait mode when no token became available.
	ErrThrottled = errors.New("siggn: throttled")
)
