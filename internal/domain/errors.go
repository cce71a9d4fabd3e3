package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for engine preconditions and protocol violations.
var (
	// ErrNotAuthenticated is returned when an operation requires the current
	// user's identity and none is available yet.
	ErrNotAuthenticated = errors.New("no authenticated user")

	// ErrProtocol is returned when a gateway response claims a transition
	// out of a terminal status, which the lifecycle rules forbid.
	ErrProtocol = errors.New("gateway response violates item lifecycle")
)

// GatewayError wraps a single failed downstream call with the originating
// operation name and, when available, the HTTP status code.
type GatewayError struct {
	Op     string // e.g. "joinRequests.listMine"
	Status int    // zero when the failure happened before a response
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway %s [%d]: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// AggregationError is returned by Synchronize when one or more of the
// top-level fetches failed. The previous state stays visible.
type AggregationError struct {
	Errs []error
}

func (e *AggregationError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return "synchronize failed: " + strings.Join(msgs, "; ")
}

func (e *AggregationError) Unwrap() []error {
	return e.Errs
}
