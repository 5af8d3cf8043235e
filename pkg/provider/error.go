package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind tags provider failures so call sites can pattern-match fallback
// vs. hard-fail without string inspection.
type ErrorKind string

const (
	// KindUnconfigured means the provider has no credential.
	KindUnconfigured ErrorKind = "unconfigured"
	// KindTransport means the provider call itself failed (network, rate
	// limit, non-2xx status).
	KindTransport ErrorKind = "transport"
	// KindMalformed means the provider answered but the response carried no
	// usable content.
	KindMalformed ErrorKind = "malformed_response"
)

// Error wraps a provider failure with its kind and origin.
type Error struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return "provider error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewUnconfigured reports a missing credential for the named provider.
func NewUnconfigured(name string) *Error {
	return &Error{Kind: KindUnconfigured, Provider: name, Err: errors.New("missing credential")}
}

// NewTransport wraps a failed provider call.
func NewTransport(name string, err error) *Error {
	return &Error{Kind: KindTransport, Provider: name, Err: err}
}

// NewMalformed reports a response with no usable content.
func NewMalformed(name string, err error) *Error {
	return &Error{Kind: KindMalformed, Provider: name, Err: err}
}

// IsUnconfigured reports whether err is a missing-credential failure.
func IsUnconfigured(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == KindUnconfigured
}

// IsTransient reports whether an error is safe to retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == KindTransport
	}
	return false
}
