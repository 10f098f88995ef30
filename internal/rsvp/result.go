package rsvp

import (
	"context"
	"errors"
	"fmt"
)

// Error codes returned by the confirmation endpoint.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeInactiveCode = "INACTIVE_CODE"
	CodeMissingCode  = "MISSING_CODE"
	CodeUnknown      = "UNKNOWN"
)

// DefaultGuestName is shown when the endpoint omits displayName.
const DefaultGuestName = "Invitado"

var ErrSubmissionInFlight = errors.New("rsvp: submission already in flight for this code")

// Confirmation is a successful lookup of an invitation record.
type Confirmation struct {
	Code             string `json:"code"`
	DisplayName      string `json:"display_name"`
	MaxPases         int    `json:"max_pases"`
	AlreadyConfirmed bool   `json:"already_confirmed"`
}

// DomainError is a structured rejection from the endpoint.
type DomainError struct {
	Code string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("rsvp: endpoint rejected code: %s", e.Code)
}

// TransportError means the exchange itself did not complete.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rsvp: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the caller-enforced deadline fired.
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Gateway confirms a normalized code against the remote endpoint.
// Failures are *DomainError or *TransportError.
type Gateway interface {
	Confirm(ctx context.Context, code string) (*Confirmation, error)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, code string) (*Confirmation, error)

func (f GatewayFunc) Confirm(ctx context.Context, code string) (*Confirmation, error) {
	return f(ctx, code)
}
