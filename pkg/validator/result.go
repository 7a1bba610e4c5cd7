package validator

import (
	"fmt"
	"maps"
	"strings"
)

// Result codes produced by the engine itself and by the built-in rules.
const (
	CodeRequired     = "REQUIRED"
	CodeRuleError    = "RULE_ERROR"
	CodeCustom       = "CUSTOM"
	CodeInvalid      = "INVALID"
	CodeTypeMismatch = "TYPE_MISMATCH"

	CodeMinLength       = "MIN_LENGTH"
	CodeMaxLength       = "MAX_LENGTH"
	CodeLength          = "LENGTH"
	CodeMinValue        = "MIN_VALUE"
	CodeMaxValue        = "MAX_VALUE"
	CodeOutOfRange      = "OUT_OF_RANGE"
	CodePatternMismatch = "PATTERN_MISMATCH"
	CodeNotInEnum       = "NOT_IN_ENUM"

	CodeInvalidEmail      = "INVALID_EMAIL"
	CodeInvalidURL        = "INVALID_URL"
	CodeInvalidNumber     = "INVALID_NUMBER"
	CodeInvalidInteger    = "INVALID_INTEGER"
	CodeInvalidDate       = "INVALID_DATE"
	CodeInvalidUUID       = "INVALID_UUID"
	CodeInvalidPhone      = "INVALID_PHONE"
	CodeInvalidIP         = "INVALID_IP"
	CodeInvalidHexColor   = "INVALID_HEX_COLOR"
	CodeInvalidSlug       = "INVALID_SLUG"
	CodeInvalidCreditCard = "INVALID_CREDIT_CARD"
	CodeInvalidJSON       = "INVALID_JSON"
	CodeInvalidFormat     = "INVALID_FORMAT"

	CodeFieldMismatch     = "FIELD_MISMATCH"
	CodeFieldSame         = "FIELD_SAME"
	CodeNotGreaterThan    = "NOT_GREATER_THAN"
	CodeNotLessThan       = "NOT_LESS_THAN"
	CodeDateNotAfter      = "DATE_NOT_AFTER"
	CodeDateNotBefore     = "DATE_NOT_BEFORE"
	CodeRequiredIf        = "REQUIRED_IF"
	CodeRequiredUnless    = "REQUIRED_UNLESS"
	CodeFieldExcludes     = "FIELD_EXCLUDES"
	CodeNotFailed         = "NOT_FAILED"
	CodeOrAllFailed       = "OR_ALL_FAILED"
	CodeInvalidComparison = "INVALID_COMPARISON"
	CodeArrayItemInvalid  = "ARRAY_ITEM_INVALID"
)

// Default messages used by the executor.
const (
	MessageRuleError       = "validation rule failed to execute"
	MessageRequiredDefault = "this field is required"
)

// Result is the outcome of one rule evaluation or of a whole chain.
// Meta carries rule specific details; see the documentation of each rule.
type Result struct {
	Valid   bool
	Message string
	Code    string
	Meta    map[string]any
}

// Valid returns a passing result.
func Valid() Result {
	return Result{Valid: true}
}

// Invalid returns a failing result with the given code and message.
func Invalid(code, message string) Result {
	return Result{Code: code, Message: message}
}

// Invalidf is Invalid with a formatted message.
func Invalidf(code, format string, args ...any) Result {
	return Result{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithMeta returns a copy of r with key set in its Meta map.
func (r Result) WithMeta(key string, value any) Result {
	meta := make(map[string]any, len(r.Meta)+1)
	maps.Copy(meta, r.Meta)
	meta[key] = value
	r.Meta = meta
	return r
}

// ValidationError is a single field level failure.
type ValidationError struct {
	Field   string
	Message string
	Code    string
	// Rule names the check that failed: a rule name, a schema check such as
	// "type" or "min", or "items".
	Rule string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Field == field {
			errs = append(errs, err)
		}
	}
	return errs
}

// Fields returns the failing fields in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}
