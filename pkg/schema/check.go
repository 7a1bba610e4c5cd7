package schema

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/poly1603/ldesign-validator/pkg/validator"
)

// checkEntry runs every definition of one field and returns the errors of
// the first definition that fails.
func (v *Validator) checkEntry(ctx context.Context, e compiledEntry, data map[string]any) []validator.ValidationError {
	value, _ := validator.Lookup(data, e.name)
	fc := validator.FieldContext{Field: e.name, Label: e.name, FormData: data}

	for _, c := range e.fields {
		if errs := v.check(ctx, c, e.name, value, fc); len(errs) > 0 {
			return errs
		}
	}
	return nil
}

func (v *Validator) check(ctx context.Context, c *compiled, name string, value any, fc validator.FieldContext) []validator.ValidationError {
	errs := v.checkValue(ctx, c, name, value, fc)
	if c.Message != "" {
		for i := range errs {
			errs[i].Message = c.Message
		}
	}
	return errs
}

func (v *Validator) checkValue(ctx context.Context, c *compiled, name string, value any, fc validator.FieldContext) []validator.ValidationError {
	if validator.IsEmpty(value) {
		if c.Required {
			return fail(name, "required", validator.Invalid(validator.CodeRequired, validator.MessageRequiredDefault))
		}
		// Only rules that evaluate empty values, such as RequiredIf, run.
		return v.runChain(ctx, c, name, value, fc)
	}

	if res, rule := v.structural(ctx, c, value, fc); !res.Valid {
		return fail(name, rule, res)
	}
	if c.items != nil {
		if errs := v.checkItems(ctx, c, name, value, fc); len(errs) > 0 {
			return errs
		}
	}
	return v.runChain(ctx, c, name, value, fc)
}

func fail(field, rule string, res validator.Result) []validator.ValidationError {
	return []validator.ValidationError{{
		Field:   field,
		Message: res.Message,
		Code:    res.Code,
		Rule:    rule,
	}}
}

// structural runs the declarative checks in their fixed order and returns
// the first failure with the name of the check.
func (v *Validator) structural(ctx context.Context, c *compiled, value any, fc validator.FieldContext) (validator.Result, string) {
	if c.Type != "" {
		if res := v.checkType(ctx, c.Type, value, fc); !res.Valid {
			return res, "type"
		}
	}
	if c.Min != nil {
		if res := checkBound(c.Type, value, *c.Min, true); !res.Valid {
			return res, "min"
		}
	}
	if c.Max != nil {
		if res := checkBound(c.Type, value, *c.Max, false); !res.Valid {
			return res, "max"
		}
	}
	if c.MinLength != nil {
		if res := checkLength(value, *c.MinLength, true); !res.Valid {
			return res, "minLength"
		}
	}
	if c.MaxLength != nil {
		if res := checkLength(value, *c.MaxLength, false); !res.Valid {
			return res, "maxLength"
		}
	}
	if c.Pattern != nil {
		s, ok := validator.AsString(value)
		if !ok {
			s = fmt.Sprint(value)
		}
		if !c.Pattern.MatchString(s) {
			return validator.Invalid(validator.CodePatternMismatch, "has an invalid format"), "pattern"
		}
	}
	if len(c.Enum) > 0 && !validator.Contains(c.Enum, value) {
		return validator.Invalid(validator.CodeNotInEnum, "must be one of: "+joinAny(c.Enum)).WithMeta("allowed", c.Enum), "enum"
	}
	return validator.Valid(), ""
}

// checkType uses the registry predicate for typ when there is one (email,
// url, number, date, ...) and a runtime type comparison otherwise.
func (v *Validator) checkType(ctx context.Context, typ string, value any, fc validator.FieldContext) validator.Result {
	if p, ok := v.registry.Lookup(typ); ok {
		return validator.Evaluate(ctx, validator.Rule{Name: typ, Check: p}, value, fc)
	}
	if kind := validator.KindOf(value); kind != typ {
		return validator.Invalidf(validator.CodeTypeMismatch, "must be of type %s", typ).WithMeta("actual", kind)
	}
	return validator.Valid()
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// checkBound compares numbers by value and everything else by length.
// Fields typed number or integer parse numeric strings.
func checkBound(typ string, value any, bound float64, isMin bool) validator.Result {
	_, isNumber := validator.AsNumber(value)
	if isNumber || typ == TypeNumber || typ == TypeInteger {
		n, ok := validator.ParseNumber(value)
		switch {
		case !ok:
			return validator.Invalid(validator.CodeInvalidNumber, "must be a number")
		case isMin && n < bound:
			return validator.Invalidf(validator.CodeMinValue, "must be at least %s", formatBound(bound))
		case !isMin && n > bound:
			return validator.Invalidf(validator.CodeMaxValue, "must be at most %s", formatBound(bound))
		}
		return validator.Valid()
	}

	size, ok := validator.SizeOf(value)
	switch {
	case !ok:
		return validator.Invalid(validator.CodeTypeMismatch, "must be a number, string or array")
	case isMin && float64(size) < bound:
		return validator.Invalidf(validator.CodeMinLength, "length must be at least %s", formatBound(bound)).WithMeta("length", size)
	case !isMin && float64(size) > bound:
		return validator.Invalidf(validator.CodeMaxLength, "length must be at most %s", formatBound(bound)).WithMeta("length", size)
	}
	return validator.Valid()
}

func checkLength(value any, limit int, isMin bool) validator.Result {
	size, ok := validator.SizeOf(value)
	switch {
	case !ok:
		return validator.Invalid(validator.CodeTypeMismatch, "must be a string or array")
	case isMin && size < limit:
		return validator.Invalidf(validator.CodeMinLength, "must be at least %d characters long", limit).WithMeta("length", size)
	case !isMin && size > limit:
		return validator.Invalidf(validator.CodeMaxLength, "must be at most %d characters long", limit).WithMeta("length", size)
	}
	return validator.Valid()
}

// checkItems validates array elements against c.items. The index of each
// failing element is part of the message.
func (v *Validator) checkItems(ctx context.Context, c *compiled, name string, value any, fc validator.FieldContext) []validator.ValidationError {
	items, ok := elements(value)
	if !ok {
		return nil
	}

	var errs []validator.ValidationError
	for i, item := range items {
		itemName := fmt.Sprintf("%s[%d]", name, i)
		itemFC := validator.FieldContext{Field: itemName, Label: itemName, FormData: fc.FormData, Params: fc.Params}

		inner := v.check(ctx, c.items, itemName, item, itemFC)
		if len(inner) == 0 {
			continue
		}
		errs = append(errs, validator.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("item at index %d: %s", i, inner[0].Message),
			Code:    validator.CodeArrayItemInvalid,
			Rule:    "items",
		})
		if !v.allItemErrors {
			break
		}
	}
	return errs
}

func elements(value any) ([]any, bool) {
	if list, ok := value.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// runChain runs Field.Rules and Field.Check through the field's chain
// validator.
func (v *Validator) runChain(ctx context.Context, c *compiled, name string, value any, fc validator.FieldContext) []validator.ValidationError {
	if c.chain == nil {
		return nil
	}
	res := c.chain.Validate(ctx, value, fc)
	defer c.chain.Release(res)
	if res.Valid {
		return nil
	}
	return fail(name, "validator", *res)
}

func joinAny(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
