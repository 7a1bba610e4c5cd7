package async

import "errors"

var (
	ErrTimeout = errors.New("async: operation timed out waiting for future completion")
	// ErrPanic wraps a value recovered from a panicking task.
	ErrPanic = errors.New("async: task panicked")
)
