package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrAsyncRule is returned by the synchronous entry points when a rule
	// returns a pending outcome. It signals a programming error, not a
	// validation failure.
	ErrAsyncRule = errors.New("validator: asynchronous rule used in synchronous validation")

	// ErrRulePanic wraps a value recovered from a panicking predicate.
	ErrRulePanic = errors.New("validator: rule panicked")

	// ErrInvalidRule is reported for malformed rules such as a nil future.
	ErrInvalidRule = errors.New("validator: invalid rule")

	// ErrUnknownRule is returned by Registry lookups for unregistered names.
	ErrUnknownRule = errors.New("validator: unknown rule")
)

// AsyncRuleError identifies the rule that broke a synchronous validation.
type AsyncRuleError struct {
	Rule  string
	Index int
}

func (e *AsyncRuleError) Error() string {
	return fmt.Sprintf("%s: rule %q at position %d returned a pending result", ErrAsyncRule, e.Rule, e.Index)
}

func (e *AsyncRuleError) Unwrap() error {
	return ErrAsyncRule
}
