package validator

import (
	"log/slog"

	"github.com/poly1603/ldesign-validator/pkg/cache"
	"github.com/poly1603/ldesign-validator/pkg/logger"
	"github.com/poly1603/ldesign-validator/pkg/pool"
)

// ErrorHandler observes contained rule failures. Its return and any panic
// inside it are ignored; it can never change a validation result.
type ErrorHandler func(err error, rule Rule, value any)

// Option configures a Validator.
type Option func(*Validator)

// WithCache shares an existing cache between validators.
func WithCache(c *cache.Cache[Result]) Option {
	return func(v *Validator) {
		if c != nil {
			v.cache = c
			v.ownsCache = false
		}
	}
}

// WithNewCache gives the validator its own cache. Close destroys it.
func WithNewCache(opts ...cache.Option) Option {
	return func(v *Validator) {
		v.cache = cache.New[Result](opts...)
		v.ownsCache = true
	}
}

// WithPool shares an existing result pool between validators.
func WithPool(p *pool.Pool[Result]) Option {
	return func(v *Validator) {
		if p != nil {
			v.pool = p
		}
	}
}

// WithNewPool gives the validator its own result pool.
func WithNewPool(opts ...pool.Option) Option {
	return func(v *Validator) {
		v.pool = pool.New[Result](opts...)
	}
}

// WithStopOnFirstError controls whether the chain stops at the first failing
// rule (the default) or runs every rule and reports all failures in the
// first failure's Meta["failures"].
func WithStopOnFirstError(stop bool) Option {
	return func(v *Validator) { v.stopOnFirstError = stop }
}

// WithErrorHandler installs a hook called for every contained rule error.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(v *Validator) { v.onError = fn }
}

// WithLogger logs contained rule errors when no ErrorHandler is installed.
// Records carry component=validator.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = logger.For(l, "validator")
		}
	}
}
