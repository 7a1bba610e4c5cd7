package validator

import (
	"context"
	"strings"
)

// sequence evaluates rules in order and feeds every settled result to visit
// until it returns false. It stays synchronous while each outcome is ready
// and moves the remainder of the walk onto a goroutine once one is pending.
func sequence(ctx context.Context, rules []Rule, value any, fc FieldContext, visit func(Result) bool, finish func() Result) Outcome {
	for i, rule := range rules {
		out := step(ctx, rule, value, fc)
		if out.IsPending() {
			return Go(ctx, func(ctx context.Context) (Result, error) {
				if !visit(settle(out)) {
					return finish(), nil
				}
				for _, next := range rules[i+1:] {
					if !visit(settle(step(ctx, next, value, fc))) {
						break
					}
				}
				return finish(), nil
			})
		}
		if !visit(settle(out)) {
			return Done(finish())
		}
	}
	return Done(finish())
}

// compose fills in the metadata a combinator inherits from its children.
// The combinator is named, and so cacheable, only when every child is named
// and leaves its message alone: child overrides end up inside the cached
// result and the name would not tell them apart.
func compose(op string, rules []Rule, check Predicate) Rule {
	r := Rule{Check: check}
	names := make([]string, 0, len(rules))
	for _, sub := range rules {
		if sub.Required || sub.EvaluateEmpty {
			r.EvaluateEmpty = true
		}
		if sub.ContextSensitive {
			r.ContextSensitive = true
		}
		if names != nil && sub.Name != "" && sub.Message == "" && sub.MessageFunc == nil {
			names = append(names, sub.Name)
		} else {
			names = nil
		}
	}
	if names != nil {
		r.Name = op + "(" + strings.Join(names, ",") + ")"
	}
	return r
}

// And passes when every rule passes and returns the first failure otherwise.
// Rules after the first failure are not evaluated.
func And(rules ...Rule) Rule {
	return compose("and", rules, func(ctx context.Context, value any, fc FieldContext) Outcome {
		failed := Valid()
		return sequence(ctx, rules, value, fc, func(r Result) bool {
			if r.Valid {
				return true
			}
			failed = r
			return false
		}, func() Result { return failed })
	})
}

// Or passes as soon as one rule passes; with no rules it fails. When all
// fail the messages are joined and the individual results are kept in
// Meta["failures"].
func Or(rules ...Rule) Rule {
	return compose("or", rules, func(ctx context.Context, value any, fc FieldContext) Outcome {
		var (
			passed   bool
			failures []Result
		)
		return sequence(ctx, rules, value, fc, func(r Result) bool {
			if r.Valid {
				passed = true
				return false
			}
			failures = append(failures, r)
			return true
		}, func() Result {
			if passed {
				return Valid()
			}
			messages := make([]string, 0, len(failures))
			for _, f := range failures {
				if f.Message != "" {
					messages = append(messages, f.Message)
				}
			}
			return Invalid(CodeOrAllFailed, strings.Join(messages, " or ")).WithMeta("failures", failures)
		})
	})
}

// Not inverts the verdict of rule. A RULE_ERROR is passed through rather
// than turned into a pass.
func Not(rule Rule) Rule {
	r := compose("not", []Rule{rule}, func(ctx context.Context, value any, fc FieldContext) Outcome {
		return step(ctx, rule, value, fc).Then(ctx, func(res Result) Result {
			switch {
			case res.Code == CodeRuleError:
				return res
			case res.Valid:
				return Invalid(CodeNotFailed, "must not satisfy "+rule.displayName())
			default:
				return Valid()
			}
		})
	})
	// An inverted required check would make every non-empty value fail.
	r.EvaluateEmpty = rule.EvaluateEmpty
	return r
}

// Condition decides which branch of a conditional rule applies.
type Condition func(value any, fc FieldContext) bool

// Branch holds the rules run when a condition holds and when it does not.
type Branch struct {
	Then      []Rule
	Otherwise []Rule
}

// When runs branch.Then if cond holds and branch.Otherwise if not. Either
// branch may be empty, in which case the rule passes.
func When(cond Condition, branch Branch) Rule {
	then, otherwise := And(branch.Then...), And(branch.Otherwise...)
	return Rule{
		EvaluateEmpty:    true,
		ContextSensitive: true,
		Check: func(ctx context.Context, value any, fc FieldContext) Outcome {
			if cond(value, fc) {
				return step(ctx, then, value, fc)
			}
			return step(ctx, otherwise, value, fc)
		},
	}
}

// ConditionalRoute pairs a condition with the rules it selects.
type ConditionalRoute struct {
	When Condition
	Then []Rule
}

// Conditional runs the rules of the first route whose condition holds, or
// fallback when none does.
func Conditional(routes []ConditionalRoute, fallback ...Rule) Rule {
	chains := make([]Rule, len(routes))
	for i, route := range routes {
		chains[i] = And(route.Then...)
	}
	def := And(fallback...)
	return Rule{
		EvaluateEmpty:    true,
		ContextSensitive: true,
		Check: func(ctx context.Context, value any, fc FieldContext) Outcome {
			for i, route := range routes {
				if route.When != nil && route.When(value, fc) {
					return step(ctx, chains[i], value, fc)
				}
			}
			return step(ctx, def, value, fc)
		},
	}
}

// Custom adapts a plain function into a rule. A bool return becomes a
// result with the given message and code; a Result is used as is, with
// message and code filling in whatever it leaves blank. The rule is
// unnamed, so it is not cached unless renamed with Named.
func Custom[R bool | Result](fn func(value any, fc FieldContext) R, message, code string) Rule {
	if code == "" {
		code = CodeCustom
	}
	if message == "" {
		message = "is invalid"
	}
	return Rule{
		Check: func(_ context.Context, value any, fc FieldContext) Outcome {
			switch out := any(fn(value, fc)).(type) {
			case bool:
				if out {
					return Pass()
				}
				return Fail(code, message)
			case Result:
				if !out.Valid {
					if out.Message == "" {
						out.Message = message
					}
					if out.Code == "" {
						out.Code = code
					}
				}
				return Done(out)
			}
			return Pass()
		},
	}
}
