package transport

import "github.com/pkg/errors"

var (
	// ErrDestroyed is returned by operations on a transport or registry
	// after Close.
	ErrDestroyed = errors.New("logfan: use after close")

	// ErrPrimaryClose is returned when closing a process-wide instance.
	ErrPrimaryClose = errors.New("logfan: the primary instance cannot be closed")
)
