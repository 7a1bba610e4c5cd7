package validator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poly1603/ldesign-validator/pkg/cache"
	"github.com/poly1603/ldesign-validator/pkg/logger"
	"github.com/poly1603/ldesign-validator/pkg/pool"
)

// Validator runs an ordered chain of rules against single values.
// It is safe for concurrent use; rules can only be appended.
type Validator struct {
	mu    sync.RWMutex
	rules []Rule

	cache            *cache.Cache[Result]
	ownsCache        bool
	pool             *pool.Pool[Result]
	stopOnFirstError bool
	onError          ErrorHandler
	logger           *slog.Logger
}

// New creates a validator. Without options it has no cache and no pool and
// stops at the first failing rule.
func New(opts ...Option) *Validator {
	v := &Validator{stopOnFirstError: true}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rule appends r to the chain and returns v for chaining.
func (v *Validator) Rule(r Rule) *Validator {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rules = append(v.rules, r)
	return v
}

// Rules appends several rules in order.
func (v *Validator) Rules(rules ...Rule) *Validator {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rules = append(v.rules, rules...)
	return v
}

// Len returns the number of rules in the chain.
func (v *Validator) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.rules)
}

func (v *Validator) Cache() *cache.Cache[Result] { return v.cache }

func (v *Validator) Pool() *pool.Pool[Result] { return v.pool }

// Close destroys a cache created with WithNewCache. Shared caches are left
// alone.
func (v *Validator) Close() {
	if v.ownsCache && v.cache != nil {
		v.cache.Destroy()
	}
}

// Validate runs the chain against value, waiting for asynchronous rules.
// It always returns exactly one result; rule panics and errors are
// contained as RULE_ERROR results. With a pool configured the result comes
// from the pool and may be handed back with Release.
func (v *Validator) Validate(ctx context.Context, value any, fc FieldContext) *Result {
	res, _ := v.run(ctx, value, fc, false)
	return res
}

// ValidateSync works like Validate but never waits: if a rule returns a
// pending outcome it fails with an *AsyncRuleError wrapping ErrAsyncRule.
func (v *Validator) ValidateSync(ctx context.Context, value any, fc FieldContext) (*Result, error) {
	return v.run(ctx, value, fc, true)
}

// IsValid validates value and recycles the result.
func (v *Validator) IsValid(ctx context.Context, value any, fc FieldContext) bool {
	res := v.Validate(ctx, value, fc)
	defer v.Release(res)
	return res.Valid
}

// Check validates value and returns nil or a ValidationError for fc.Field.
// The intermediate result is recycled.
func (v *Validator) Check(ctx context.Context, value any, fc FieldContext) error {
	res := v.Validate(ctx, value, fc)
	defer v.Release(res)
	if res.Valid {
		return nil
	}
	return ValidationError{Field: fc.Field, Message: res.Message, Code: res.Code}
}

// Release hands a result obtained from this validator back to its pool.
// It is optional; without a pool it does nothing.
func (v *Validator) Release(res *Result) {
	if v.pool != nil && res != nil {
		v.pool.Release(res)
	}
}

func (v *Validator) snapshot() []Rule {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rules[:len(v.rules):len(v.rules)]
}

func (v *Validator) run(ctx context.Context, value any, fc FieldContext, sync bool) (*Result, error) {
	rules := v.snapshot()
	if len(rules) == 0 {
		return v.acquire(Valid()), nil
	}

	empty := IsEmpty(value)
	var failures []Result

	for i, rule := range rules {
		if empty {
			if rule.Required {
				// Required failures end the chain whatever stopOnFirstError says.
				return v.acquire(rule.resolveMessage(requiredResult(), value, fc)), nil
			}
			if !rule.EvaluateEmpty {
				continue
			}
		}

		res, err := v.evaluate(ctx, i, rule, value, fc, sync)
		if err != nil {
			return nil, err
		}
		if res.Valid {
			continue
		}

		res = rule.resolveMessage(res, value, fc)
		if v.stopOnFirstError {
			return v.acquire(res), nil
		}
		failures = append(failures, res)
	}

	if len(failures) > 0 {
		return v.acquire(failures[0].WithMeta("failures", failures)), nil
	}
	return v.acquire(Valid()), nil
}

// evaluate produces the raw predicate result for one rule, going through the
// cache when the rule is named. Message overrides are applied by the caller
// so that cached results get them too.
func (v *Validator) evaluate(ctx context.Context, index int, rule Rule, value any, fc FieldContext, sync bool) (Result, error) {
	if rule.Check == nil {
		return Valid(), nil
	}

	var key string
	useCache := v.cache != nil && rule.Name != ""
	if useCache {
		if rule.ContextSensitive {
			key = cache.GenerateKey(value, rule.Name, fc.FormData)
		} else {
			key = cache.GenerateKey(value, rule.Name)
		}
		if res, ok := v.cache.Get(key); ok {
			return res, nil
		}
	}

	out := call(ctx, rule, value, fc)
	if out.IsPending() && sync {
		return Result{}, &AsyncRuleError{Rule: rule.displayName(), Index: index}
	}

	res, err := out.Await()
	if err != nil {
		v.report(ctx, err, rule, value, fc)
		res = ruleError(err)
	}

	if useCache {
		v.cache.Set(key, res)
	}
	return res, nil
}

// report hands a contained error to the hook or the logger. Nothing it does
// can reach the caller.
func (v *Validator) report(ctx context.Context, err error, rule Rule, value any, fc FieldContext) {
	defer func() { _ = recover() }()

	if v.onError != nil {
		v.onError(err, rule, value)
		return
	}
	if v.logger != nil {
		v.logger.LogAttrs(ctx, slog.LevelError, "validation rule failed",
			logger.Rule(rule.Name),
			logger.Field(fc.Field),
			logger.Value(value),
			logger.Code(CodeRuleError),
			logger.Error(err),
		)
	}
}

func (v *Validator) acquire(res Result) *Result {
	if v.pool == nil {
		return &res
	}
	r := v.pool.Acquire()
	*r = res
	return r
}
