package client

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is returned when a Request breaks the GET/POST invariants.
var ErrInvalidRequest = errors.New("invalid request")

// TransportError is a connectivity, timeout, TLS or I/O failure. The request
// may or may not have reached the website.
type TransportError struct {
	Method string
	Route  string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure on %s %s: %v", e.Method, e.Route, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolViolation is a response that does not follow the envelope contract,
// usually a version mismatch or a proxy answering instead of the website.
type ProtocolViolation struct {
	Status int
	Route  string
	Reason string
	Err    error
}

func (e *ProtocolViolation) Error() string {
	msg := fmt.Sprintf("protocol violation (status %d): %s", e.Status, e.Reason)
	if e.Route != "" {
		msg += " on " + e.Route
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolViolation) Unwrap() error { return e.Err }
