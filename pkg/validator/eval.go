package validator

import (
	"context"
	"fmt"
)

// call runs the rule's predicate, turning a panic into an errored outcome.
func call(ctx context.Context, rule Rule, value any, fc FieldContext) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Errored(fmt.Errorf("%w: %s: %v", ErrRulePanic, rule.displayName(), r))
		}
	}()
	return rule.Check(ctx, value, fc)
}

// ruleError is the result every contained rule failure degrades into.
func ruleError(err error) Result {
	return Result{
		Code:    CodeRuleError,
		Message: MessageRuleError,
		Meta:    map[string]any{"error": err.Error()},
	}
}

func requiredResult() Result {
	return Invalid(CodeRequired, MessageRequiredDefault)
}

// step evaluates a single rule the way the executor does (required check,
// empty skip, predicate, message override) but without cache or pool. The
// outcome stays pending when the predicate suspends.
func step(ctx context.Context, rule Rule, value any, fc FieldContext) Outcome {
	if IsEmpty(value) {
		if rule.Required {
			return Done(rule.resolveMessage(requiredResult(), value, fc))
		}
		if !rule.EvaluateEmpty {
			return Pass()
		}
	}
	if rule.Check == nil {
		return Pass()
	}
	return call(ctx, rule, value, fc).Then(ctx, func(r Result) Result {
		return rule.resolveMessage(r, value, fc)
	})
}

// settle waits for an outcome and folds errors into RULE_ERROR results.
func settle(o Outcome) Result {
	r, err := o.Await()
	if err != nil {
		return ruleError(err)
	}
	return r
}

// Evaluate runs one rule against value and waits for its result. Panics,
// errors and rejected futures come back as RULE_ERROR results.
func Evaluate(ctx context.Context, rule Rule, value any, fc FieldContext) Result {
	return settle(step(ctx, rule, value, fc))
}
