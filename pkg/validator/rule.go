package validator

import (
	"context"
	"fmt"
	"reflect"

	"github.com/poly1603/ldesign-validator/pkg/async"
)

// FieldContext is per-call ambient data visible to predicates. It is
// read-only for the duration of a validation call.
type FieldContext struct {
	// Field is the name or dotted path of the validated field.
	Field string
	// Label is a human readable field name used in messages.
	Label string
	// FormData holds sibling values for cross-field rules.
	FormData map[string]any
	// Params carries caller defined extra data.
	Params any
}

// Name returns Label, falling back to Field and then to "value".
func (fc FieldContext) Name() string {
	switch {
	case fc.Label != "":
		return fc.Label
	case fc.Field != "":
		return fc.Field
	default:
		return "value"
	}
}

// Value returns the value at a dotted path in FormData.
func (fc FieldContext) Value(path string) (any, bool) {
	return Lookup(fc.FormData, path)
}

// Predicate is the single capability every rule implements. It must not
// mutate fc and must not keep a reference to anything it returns.
type Predicate func(ctx context.Context, value any, fc FieldContext) Outcome

// Outcome is what a predicate returns: either a ready result (or error), or
// a pending computation. Synchronous callers use the distinction to reject
// asynchronous rules instead of blocking on them.
type Outcome struct {
	result  Result
	err     error
	pending *async.Future[Result]
}

// Done wraps a ready result.
func Done(r Result) Outcome {
	return Outcome{result: r}
}

// Pass is a ready passing outcome.
func Pass() Outcome {
	return Outcome{result: Valid()}
}

// Fail is a ready failing outcome.
func Fail(code, message string) Outcome {
	return Outcome{result: Invalid(code, message)}
}

// Errored reports that the rule could not run. The executor turns it into a
// RULE_ERROR result.
func Errored(err error) Outcome {
	return Outcome{err: err}
}

// Pending wraps a computation that completes later. A nil future is treated
// as a rule error.
func Pending(f *async.Future[Result]) Outcome {
	if f == nil {
		return Outcome{err: fmt.Errorf("%w: nil future", ErrInvalidRule)}
	}
	return Outcome{pending: f}
}

// Go runs fn in its own goroutine and returns its pending outcome.
func Go(ctx context.Context, fn func(context.Context) (Result, error)) Outcome {
	return Outcome{pending: async.Go(ctx, fn)}
}

// IsPending reports whether the outcome is still being computed.
func (o Outcome) IsPending() bool {
	return o.pending != nil
}

// Await blocks until the outcome is available.
func (o Outcome) Await() (Result, error) {
	if o.pending != nil {
		return o.pending.Await()
	}
	return o.result, o.err
}

// Then maps the eventual result through fn, staying synchronous when the
// outcome is ready. Errors pass through untouched.
func (o Outcome) Then(ctx context.Context, fn func(Result) Result) Outcome {
	if o.pending == nil {
		if o.err != nil {
			return o
		}
		return Done(fn(o.result))
	}
	return Go(ctx, func(context.Context) (Result, error) {
		r, err := o.pending.Await()
		if err != nil {
			return Result{}, err
		}
		return fn(r), nil
	})
}

// Rule is a predicate plus the metadata the executor applies around it.
type Rule struct {
	// Name identifies the rule for caching and diagnostics. Unnamed rules
	// are never cached.
	Name string
	// Check may be nil for rules that only carry Required.
	Check Predicate
	// Message overrides the predicate's failure message.
	Message string
	// MessageFunc overrides the failure message and wins over Message.
	MessageFunc func(value any, fc FieldContext) string
	// Required makes empty values fail with REQUIRED. It is evaluated by
	// the executor, never by Check.
	Required bool
	// EvaluateEmpty runs Check even for empty values. Conditional required
	// rules need it; everything else is skipped on empty input.
	EvaluateEmpty bool
	// ContextSensitive marks rules that read FormData, so their cache key
	// also covers the sibling values.
	ContextSensitive bool
}

// WithMessage returns a copy of r with a fixed failure message.
func (r Rule) WithMessage(message string) Rule {
	r.Message = message
	return r
}

// WithMessageFunc returns a copy of r with a computed failure message.
func (r Rule) WithMessageFunc(fn func(value any, fc FieldContext) string) Rule {
	r.MessageFunc = fn
	return r
}

// Named returns a copy of r with a different name.
func (r Rule) Named(name string) Rule {
	r.Name = name
	return r
}

// AsRequired returns a copy of r that also rejects empty values.
func (r Rule) AsRequired() Rule {
	r.Required = true
	return r
}

// resolveMessage applies the rule level message override to a failing result.
func (r Rule) resolveMessage(res Result, value any, fc FieldContext) Result {
	if res.Valid {
		return res
	}
	switch {
	case r.MessageFunc != nil:
		res.Message = r.MessageFunc(value, fc)
	case r.Message != "":
		res.Message = r.Message
	}
	return res
}

func (r Rule) displayName() string {
	if r.Name == "" {
		return "<anonymous>"
	}
	return r.Name
}

// IsEmpty reports whether value is nil, a nil pointer, map, slice or
// interface, or the empty string. This is the only notion of "empty" used by
// the engine: 0, false and empty but non-nil collections are not empty.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
