package schema

import "github.com/poly1603/ldesign-validator/pkg/validator"

// Result is the outcome of validating one record.
type Result struct {
	Valid bool
	// Errors lists field failures in schema declaration order.
	Errors validator.ValidationErrors
	// ErrorMap holds the same errors grouped by field.
	ErrorMap map[string][]validator.ValidationError
	// Data is the record after defaults and transforms. The input record is
	// never modified.
	Data map[string]any
}

func newResult(data map[string]any) *Result {
	return &Result{
		Valid:    true,
		ErrorMap: make(map[string][]validator.ValidationError),
		Data:     data,
	}
}

func (r *Result) add(err validator.ValidationError) {
	r.Valid = false
	r.Errors.Add(err)
	r.ErrorMap[err.Field] = append(r.ErrorMap[err.Field], err)
}

// Err returns nil for a valid result and the ValidationErrors otherwise.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	return r.Errors
}
