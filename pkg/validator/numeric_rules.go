package validator

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func numberRule(name, code, message string, ok func(float64) bool) Rule {
	return Rule{
		Name: name,
		Check: func(_ context.Context, value any, _ FieldContext) Outcome {
			n, isNumber := ParseNumber(value)
			if !isNumber {
				return Fail(CodeInvalidNumber, "must be a number")
			}
			if !ok(n) {
				return Fail(code, message)
			}
			return Pass()
		},
	}
}

// Min requires a number (or numeric string) greater than or equal to min.
func Min(min float64) Rule {
	return numberRule("min:"+formatNumber(min), CodeMinValue,
		fmt.Sprintf("must be at least %s", formatNumber(min)),
		func(n float64) bool { return n >= min })
}

// Max requires a number (or numeric string) less than or equal to max.
func Max(max float64) Rule {
	return numberRule("max:"+formatNumber(max), CodeMaxValue,
		fmt.Sprintf("must be at most %s", formatNumber(max)),
		func(n float64) bool { return n <= max })
}

// Between requires min <= value <= max.
func Between(min, max float64) Rule {
	return numberRule(fmt.Sprintf("between:%s:%s", formatNumber(min), formatNumber(max)), CodeOutOfRange,
		fmt.Sprintf("must be between %s and %s", formatNumber(min), formatNumber(max)),
		func(n float64) bool { return n >= min && n <= max })
}

func numberPredicate(_ context.Context, value any, _ FieldContext) Outcome {
	if IsEmpty(value) {
		return Pass()
	}
	if n, ok := ParseNumber(value); !ok || math.IsNaN(n) {
		return Fail(CodeInvalidNumber, "must be a number")
	}
	return Pass()
}

func integerPredicate(_ context.Context, value any, _ FieldContext) Outcome {
	if IsEmpty(value) {
		return Pass()
	}
	n, ok := ParseNumber(value)
	if !ok || n != math.Trunc(n) || math.IsInf(n, 0) {
		return Fail(CodeInvalidInteger, "must be an integer")
	}
	return Pass()
}

// Number accepts numeric values and numeric strings.
func Number() Rule { return Rule{Name: "number", Check: numberPredicate} }

// Integer accepts whole numbers and whole-number strings.
func Integer() Rule { return Rule{Name: "integer", Check: integerPredicate} }
