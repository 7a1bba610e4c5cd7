package validator

import (
	"context"

	"github.com/poly1603/ldesign-validator/pkg/async"
)

// BatchFailure locates one failing value of a batch.
type BatchFailure struct {
	Index  int
	Value  any
	Result Result
}

// BatchResult aggregates per-value results in input order.
type BatchResult struct {
	Valid    bool
	Results  []Result
	Failures []BatchFailure
}

// ValidateBatch validates values one after another. Cache entries written
// for earlier values are visible to later ones.
func (v *Validator) ValidateBatch(ctx context.Context, values []any, fc FieldContext) BatchResult {
	results := make([]Result, len(values))
	for i, value := range values {
		results[i] = v.detach(v.Validate(ctx, value, fc))
	}
	return newBatchResult(values, results)
}

// ValidateParallel validates every value in its own goroutine and joins them.
// Per-value results match ValidateBatch for pure rules; only cache visibility
// between values of the same call differs.
func (v *Validator) ValidateParallel(ctx context.Context, values []any, fc FieldContext) BatchResult {
	futures := make([]*async.Future[Result], len(values))
	for i, value := range values {
		futures[i] = async.Async(ctx, value, func(ctx context.Context, value any) (Result, error) {
			return v.detach(v.Validate(ctx, value, fc)), nil
		})
	}

	results, err := async.WaitAll(futures...)
	if err != nil {
		// A canceled ctx completes futures without running them.
		for i, f := range futures {
			if _, ferr := f.Await(); ferr != nil {
				results[i] = ruleError(ferr)
			}
		}
	}
	return newBatchResult(values, results)
}

// detach copies a possibly pooled result and recycles the original.
func (v *Validator) detach(res *Result) Result {
	out := *res
	v.Release(res)
	return out
}

func newBatchResult(values []any, results []Result) BatchResult {
	br := BatchResult{Valid: true, Results: results}
	for i, res := range results {
		if !res.Valid {
			br.Valid = false
			br.Failures = append(br.Failures, BatchFailure{Index: i, Value: values[i], Result: res})
		}
	}
	return br
}
