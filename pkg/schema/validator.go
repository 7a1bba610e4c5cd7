package schema

import (
	"context"
	"log/slog"
	"maps"

	"golang.org/x/sync/errgroup"

	"github.com/poly1603/ldesign-validator/pkg/logger"
	"github.com/poly1603/ldesign-validator/pkg/sanitizer"
	"github.com/poly1603/ldesign-validator/pkg/validator"
)

// compiled is a Field with its transform and chain resolved once.
type compiled struct {
	Field
	transform    sanitizer.Transform
	transformErr error
	chain        *validator.Validator
	items        *compiled
}

type compiledEntry struct {
	name   string
	fields []*compiled
}

// Validator checks records against a Schema. It is safe for concurrent use.
type Validator struct {
	entries []compiledEntry

	stopOnFirstError bool
	autoTransform    bool
	allItemErrors    bool
	concurrency      int
	registry         *validator.Registry
	chainOpts        []validator.Option
	logger           *slog.Logger
}

// NewValidator compiles s. Later changes to s do not affect the validator.
func NewValidator(s *Schema, opts ...Option) *Validator {
	v := &Validator{registry: validator.Builtins()}
	for _, opt := range opts {
		opt(v)
	}

	v.entries = make([]compiledEntry, len(s.entries))
	for i, e := range s.entries {
		ce := compiledEntry{name: e.name, fields: make([]*compiled, len(e.fields))}
		for j, f := range e.fields {
			ce.fields[j] = v.compile(f)
		}
		v.entries[i] = ce
	}
	return v
}

func (v *Validator) compile(f Field) *compiled {
	c := &compiled{Field: f}

	if f.hasTransform() {
		c.transform, c.transformErr = sanitizer.Chain(f.Transform...)
		if c.transformErr == nil && f.TransformFunc != nil {
			c.transform = sanitizer.Compose[any](c.transform, f.TransformFunc)
		}
	}

	if f.hasChain() {
		var opts []validator.Option
		if v.logger != nil {
			opts = append(opts, validator.WithLogger(v.logger))
		}
		c.chain = validator.New(append(opts, v.chainOpts...)...).Rules(f.Rules...)
		if f.Check != nil {
			c.chain.Rule(validator.Rule{Check: f.Check})
		}
	}

	if f.Items != nil {
		c.items = v.compile(*f.Items)
		if c.transformErr == nil {
			c.transformErr = c.items.transformErr
		}
	}
	return c
}

// transforms reports whether c or any nested item definition transforms.
func (c *compiled) transforms() bool {
	return c.transform != nil || c.items != nil && c.items.transforms()
}

// Close releases resources held by the chain validators, such as caches
// created through WithChainOptions(validator.WithNewCache()).
func (v *Validator) Close() {
	var walk func(c *compiled)
	walk = func(c *compiled) {
		if c.chain != nil {
			c.chain.Close()
		}
		if c.items != nil {
			walk(c.items)
		}
	}
	for _, e := range v.entries {
		for _, c := range e.fields {
			walk(c)
		}
	}
}

// Validate checks record and returns a complete result. It never fails:
// rule panics and errors are reported as RULE_ERROR field errors.
func (v *Validator) Validate(ctx context.Context, record map[string]any) *Result {
	data := maps.Clone(record)
	if data == nil {
		data = make(map[string]any)
	}
	res := newResult(data)

	if v.concurrency > 1 {
		v.validateConcurrent(ctx, data, res)
		return res
	}

	for _, e := range v.entries {
		errs := v.prepare(ctx, e, data)
		if len(errs) == 0 {
			errs = v.checkEntry(ctx, e, data)
		}
		if v.collect(res, errs) {
			break
		}
	}
	return res
}

// validateConcurrent applies every default and transform first, then checks
// fields in parallel. Errors are buffered per field so their order does not
// depend on completion order.
func (v *Validator) validateConcurrent(ctx context.Context, data map[string]any, res *Result) {
	buf := make([][]validator.ValidationError, len(v.entries))
	for i, e := range v.entries {
		buf[i] = v.prepare(ctx, e, data)
	}

	var g errgroup.Group
	g.SetLimit(v.concurrency)
	for i, e := range v.entries {
		if len(buf[i]) > 0 {
			continue
		}
		g.Go(func() error {
			buf[i] = v.checkEntry(ctx, e, data)
			return nil
		})
	}
	_ = g.Wait()

	for _, errs := range buf {
		if v.collect(res, errs) {
			return
		}
	}
}

// collect records errs and reports whether validation should stop.
func (v *Validator) collect(res *Result, errs []validator.ValidationError) bool {
	if len(errs) == 0 {
		return false
	}
	if v.stopOnFirstError {
		res.add(errs[0])
		return true
	}
	for _, err := range errs {
		res.add(err)
	}
	return false
}

// prepare applies defaults and, with auto transform, transforms to the
// field's value in data.
func (v *Validator) prepare(ctx context.Context, e compiledEntry, data map[string]any) []validator.ValidationError {
	for _, c := range e.fields {
		value, found := validator.Lookup(data, e.name)
		if (!found || value == nil) && c.Default != nil {
			value, found = c.Default, true
			setPath(data, e.name, value)
		}

		if !v.autoTransform || !found {
			continue
		}
		if c.transformErr != nil {
			if log := logger.For(v.logger, "schema"); log != nil {
				log.LogAttrs(ctx, slog.LevelWarn, "invalid field transform",
					logger.Field(e.name),
					logger.Error(c.transformErr),
				)
			}
			return []validator.ValidationError{{
				Field:   e.name,
				Message: validator.MessageRuleError,
				Code:    validator.CodeRuleError,
				Rule:    "transform",
			}}
		}
		if transformed, changed := transformValue(c, value); changed {
			setPath(data, e.name, transformed)
		}
	}
	return nil
}

// transformValue applies c's transform and, for []any values, the item
// transforms. The input value is not modified.
func transformValue(c *compiled, value any) (any, bool) {
	changed := false
	if c.transform != nil {
		value, changed = c.transform(value), true
	}
	if c.items == nil || !c.items.transforms() {
		return value, changed
	}
	list, ok := value.([]any)
	if !ok {
		return value, changed
	}
	out := make([]any, len(list))
	for i, item := range list {
		out[i], _ = transformValue(c.items, item)
	}
	return out, true
}
