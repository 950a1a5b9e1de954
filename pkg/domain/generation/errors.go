package generation

import (
	"errors"
	"fmt"
)

var ErrBlockedByGuardrails = errors.New("request blocked by guardrails")

// ProviderCallError wraps a single failed provider call. It is transient:
// the orchestrator answers it with exactly one fallback attempt.
type ProviderCallError struct {
	Provider Provider
	Err      error
}

func (e *ProviderCallError) Error() string {
	return fmt.Sprintf("provider %s call failed: %v", e.Provider, e.Err)
}

func (e *ProviderCallError) Unwrap() error {
	return e.Err
}

// AllProvidersFailedError is terminal: both the requested provider and its
// ring fallback failed. It carries both failures and the request correlation
// id for support traceability.
type AllProvidersFailedError struct {
	RequestID   string
	PrimaryErr  *ProviderCallError
	FallbackErr *ProviderCallError
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all providers failed (request %s): primary: %v; fallback: %v",
		e.RequestID, e.PrimaryErr, e.FallbackErr)
}

func (e *AllProvidersFailedError) Unwrap() error {
	return e.PrimaryErr
}
