package validator

import "context"

// crossField builds a context sensitive rule comparing value with the value
// at path in FormData.
func crossField(name, path string, check func(value, other any, found bool) Result) Rule {
	return Rule{
		Name:             name + ":" + path,
		ContextSensitive: true,
		Check: func(_ context.Context, value any, fc FieldContext) Outcome {
			other, found := fc.Value(path)
			res := check(value, other, found)
			if !res.Valid {
				res = res.WithMeta("field", path)
			}
			return Done(res)
		},
	}
}

// MatchField requires value to equal the value at path, e.g. a password
// confirmation.
func MatchField(path string) Rule {
	return crossField("matchField", path, func(value, other any, _ bool) Result {
		if Equal(value, other) {
			return Valid()
		}
		return Invalidf(CodeFieldMismatch, "must match %s", path)
	})
}

// DifferentFrom requires value to differ from the value at path.
func DifferentFrom(path string) Rule {
	return crossField("differentFrom", path, func(value, other any, _ bool) Result {
		if Equal(value, other) {
			return Invalidf(CodeFieldSame, "must be different from %s", path)
		}
		return Valid()
	})
}

// ordered compares numbers or dates. A missing or empty other value passes.
func ordered(name, path, code, relation string, accept func(cmp int) bool) Rule {
	return crossField(name, path, func(value, other any, found bool) Result {
		if !found || IsEmpty(other) {
			return Valid()
		}
		cmp, ok := compare(value, other)
		if !ok {
			return Invalidf(CodeInvalidComparison, "cannot be compared with %s", path)
		}
		if !accept(cmp) {
			return Invalidf(code, "must be %s %s", relation, path)
		}
		return Valid()
	})
}

// GreaterThan requires value > the value at path. Numbers, numeric strings
// and dates are compared.
func GreaterThan(path string) Rule {
	return ordered("greaterThan", path, CodeNotGreaterThan, "greater than", func(c int) bool { return c > 0 })
}

func GreaterThanOrEqual(path string) Rule {
	return ordered("greaterThanOrEqual", path, CodeNotGreaterThan, "greater than or equal to", func(c int) bool { return c >= 0 })
}

// LessThan requires value < the value at path.
func LessThan(path string) Rule {
	return ordered("lessThan", path, CodeNotLessThan, "less than", func(c int) bool { return c < 0 })
}

func LessThanOrEqual(path string) Rule {
	return ordered("lessThanOrEqual", path, CodeNotLessThan, "less than or equal to", func(c int) bool { return c <= 0 })
}

func dated(name, path, code, relation string, accept func(cmp int) bool) Rule {
	return crossField(name, path, func(value, other any, found bool) Result {
		if !found || IsEmpty(other) {
			return Valid()
		}
		t, ok := AsTime(value)
		if !ok {
			return Invalid(CodeInvalidDate, "must be a valid date")
		}
		o, ok := AsTime(other)
		if !ok {
			return Invalidf(CodeInvalidDate, "%s is not a valid date", path)
		}
		if !accept(t.Compare(o)) {
			return Invalidf(code, "date must be %s %s", relation, path)
		}
		return Valid()
	})
}

// DateAfter requires value to be strictly after the date at path.
func DateAfter(path string) Rule {
	return dated("dateAfter", path, CodeDateNotAfter, "after", func(c int) bool { return c > 0 })
}

// DateAfterOrSame also accepts the same instant.
func DateAfterOrSame(path string) Rule {
	return dated("dateAfterOrSame", path, CodeDateNotAfter, "on or after", func(c int) bool { return c >= 0 })
}

// DateBefore requires value to be strictly before the date at path.
func DateBefore(path string) Rule {
	return dated("dateBefore", path, CodeDateNotBefore, "before", func(c int) bool { return c < 0 })
}

func DateBeforeOrSame(path string) Rule {
	return dated("dateBeforeOrSame", path, CodeDateNotBefore, "on or before", func(c int) bool { return c <= 0 })
}

// RequiredIf makes value required only when the field at path is not empty.
func RequiredIf(path string) Rule {
	r := crossField("requiredIf", path, func(value, other any, found bool) Result {
		if found && !IsEmpty(other) && IsEmpty(value) {
			return Invalidf(CodeRequiredIf, "is required when %s is provided", path)
		}
		return Valid()
	})
	r.EvaluateEmpty = true
	return r
}

// RequiredUnless makes value required when the field at path is empty.
func RequiredUnless(path string) Rule {
	r := crossField("requiredUnless", path, func(value, other any, found bool) Result {
		if (!found || IsEmpty(other)) && IsEmpty(value) {
			return Invalidf(CodeRequiredUnless, "is required unless %s is provided", path)
		}
		return Valid()
	})
	r.EvaluateEmpty = true
	return r
}

// Excludes requires value to be empty when the field at path is not empty.
func Excludes(path string) Rule {
	return crossField("excludes", path, func(value, other any, found bool) Result {
		if found && !IsEmpty(other) && !IsEmpty(value) {
			return Invalidf(CodeFieldExcludes, "must be empty when %s is provided", path)
		}
		return Valid()
	})
}

// Reference points at a sibling value for use inside custom predicates.
type Reference struct {
	path string
}

// Ref returns a reference to the value at a dotted path in FormData.
func Ref(path string) Reference {
	return Reference{path: path}
}

func (r Reference) Path() string { return r.path }

// Resolve returns the referenced value, or nil when any step is missing.
func (r Reference) Resolve(fc FieldContext) any {
	v, _ := fc.Value(r.path)
	return v
}
