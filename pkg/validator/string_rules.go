package validator

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// Required rejects empty values. It has no predicate; the executor applies it.
func Required() Rule {
	return Rule{Name: "required", Required: true}
}

func lengthRule(name, code string, ok func(n int) bool, message string) Rule {
	return Rule{
		Name: name,
		Check: func(_ context.Context, value any, _ FieldContext) Outcome {
			n, hasLen := SizeOf(value)
			if !hasLen {
				return Fail(CodeTypeMismatch, "must be a string, array or map")
			}
			if !ok(n) {
				return Done(Invalid(code, message).WithMeta("length", n))
			}
			return Pass()
		},
	}
}

// MinLength requires at least n characters (runes) or elements.
// Meta["length"] holds the actual length on failure.
func MinLength(n int) Rule {
	return lengthRule(fmt.Sprintf("minLength:%d", n), CodeMinLength,
		func(l int) bool { return l >= n },
		fmt.Sprintf("must be at least %d characters long", n))
}

// MaxLength allows at most n characters (runes) or elements.
func MaxLength(n int) Rule {
	return lengthRule(fmt.Sprintf("maxLength:%d", n), CodeMaxLength,
		func(l int) bool { return l <= n },
		fmt.Sprintf("must be at most %d characters long", n))
}

// Length requires exactly n characters (runes) or elements.
func Length(n int) Rule {
	return lengthRule(fmt.Sprintf("length:%d", n), CodeLength,
		func(l int) bool { return l == n },
		fmt.Sprintf("must be exactly %d characters long", n))
}

// Pattern requires string values to match re.
func Pattern(re *regexp.Regexp) Rule {
	return Rule{
		Name:  "pattern:" + re.String(),
		Check: stringCheck(CodePatternMismatch, "has an invalid format", re.MatchString),
	}
}

// OneOf requires the value to equal one of options. Numbers compare by
// value regardless of their Go type.
func OneOf(options ...any) Rule {
	parts := make([]string, len(options))
	ids := make([]string, len(options))
	for i, o := range options {
		parts[i] = fmt.Sprint(o)
		// Typed and quoted, so "1" and 1 or "a, b" and "a","b" differ.
		ids[i] = fmt.Sprintf("%T:%#v", o, o)
	}
	list := strings.Join(parts, ", ")

	return Rule{
		Name: "oneOf:" + strings.Join(ids, ","),
		Check: func(_ context.Context, value any, _ FieldContext) Outcome {
			if Contains(options, value) {
				return Pass()
			}
			return Done(Invalid(CodeNotInEnum, "must be one of: "+list).WithMeta("allowed", options))
		},
	}
}

// Contains reports whether value equals one of options.
func Contains(options []any, value any) bool {
	for _, o := range options {
		if Equal(o, value) {
			return true
		}
	}
	return false
}

// Equal compares two values, treating numbers of different Go types as
// equal when their values match.
func Equal(a, b any) bool {
	if x, ok := AsNumber(a); ok {
		if y, ok := AsNumber(b); ok {
			return x == y
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Equal(y)
		}
	}
	return reflect.DeepEqual(a, b)
}
