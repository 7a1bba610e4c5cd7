package schema

import (
	"regexp"

	"github.com/poly1603/ldesign-validator/pkg/sanitizer"
	"github.com/poly1603/ldesign-validator/pkg/validator"
)

// Type names with dedicated handling. Any other name is looked up in the
// registry and, failing that, compared with validator.KindOf.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeDate    = "date"
	TypeEmail   = "email"
	TypeURL     = "url"
)

// Field describes the checks for one record field. Checks run in a fixed
// order: required, type, min, max, minLength, maxLength, pattern, enum,
// items, and finally Rules and Check.
type Field struct {
	Type     string
	Required bool

	// Min and Max compare numbers by value and strings, arrays and maps by
	// length.
	Min *float64
	Max *float64

	MinLength *int
	MaxLength *int
	Pattern   *regexp.Regexp
	Enum      []any

	// Items validates every element of an array value.
	Items *Field

	// Rules run through a chain validator after the structural checks.
	// Cross-field rules see the record being validated as FormData.
	Rules []validator.Rule
	// Check is a custom predicate run last.
	Check validator.Predicate

	// Transform names built-in transforms applied in order when the schema
	// validator has auto transform enabled. TransformFunc runs after them.
	Transform     []string
	TransformFunc sanitizer.Transform

	// Default replaces a missing or nil value before anything else.
	Default any

	// Message replaces the message of any failure on this field.
	Message string
}

// Ptr returns a pointer to v, for the optional bounds of Field.
func Ptr[T any](v T) *T {
	return &v
}

func (f Field) hasTransform() bool {
	return len(f.Transform) > 0 || f.TransformFunc != nil
}

func (f Field) hasChain() bool {
	return len(f.Rules) > 0 || f.Check != nil
}
