package schema

import (
	"log/slog"

	"github.com/poly1603/ldesign-validator/pkg/validator"
)

// Option configures a Validator.
type Option func(*Validator)

// WithStopOnFirstError ends validation at the first failing field, so the
// result holds at most one error.
func WithStopOnFirstError(stop bool) Option {
	return func(v *Validator) { v.stopOnFirstError = stop }
}

// WithAutoTransform applies Field.Transform and Field.TransformFunc before
// checking.
func WithAutoTransform(enabled bool) Option {
	return func(v *Validator) { v.autoTransform = enabled }
}

// WithAllItemErrors reports every failing array element instead of only the
// first one.
func WithAllItemErrors(enabled bool) Option {
	return func(v *Validator) { v.allItemErrors = enabled }
}

// WithConcurrency checks up to n fields at once. Defaults and transforms
// are still applied sequentially first, so cross-field rules see the final
// record. Values below 2 keep validation sequential.
func WithConcurrency(n int) Option {
	return func(v *Validator) { v.concurrency = n }
}

// WithRegistry replaces the registry used to resolve type names.
func WithRegistry(r *validator.Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithChainOptions configures the chain validators built for Field.Rules
// and Field.Check, e.g. to share a result cache.
func WithChainOptions(opts ...validator.Option) Option {
	return func(v *Validator) { v.chainOpts = append(v.chainOpts, opts...) }
}

// WithLogger logs contained errors from field rules (component=validator)
// and unusable transforms (component=schema).
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}
