// Package validator runs ordered chains of validation rules against single
// values.
//
// A Rule pairs a Predicate with the metadata the executor applies around it:
// a name used for result caching, an optional message override and a
// required flag. Predicates return an Outcome, which is either ready or
// pending. Ready outcomes keep the whole evaluation synchronous, so the same
// rule set can be used from ValidateSync as long as no rule actually
// suspends.
//
// # Executor
//
// A Validator evaluates its rules in insertion order:
//
//	v := validator.New(validator.WithNewCache(cache.WithTTL(time.Minute)))
//	v.Rules(validator.Required(), validator.MinLength(8))
//
//	res := v.Validate(ctx, "abc", validator.FieldContext{Field: "password"})
//	// res.Valid == false, res.Code == validator.CodeMinLength
//
// Empty values (nil, nil collections and "") fail rules marked Required and
// skip everything else. Predicate panics and errors never reach the caller:
// they become RULE_ERROR results and are passed to the ErrorHandler or the
// logger. The only hard error is ErrAsyncRule from ValidateSync.
//
// Named rules are cached when the validator has a cache. The key covers the
// value, the rule name and, for rules that read FormData, the sibling
// values. Message overrides are applied after the cache lookup, so a cached
// result still gets the rule's own message.
//
// # Rules
//
// Leaf rules cover formats (Email, URL, UUID, Phone, IP, ...), lengths,
// numeric bounds, patterns and enumerations. Cross-field rules such as
// MatchField, GreaterThan, DateAfter and RequiredIf look up sibling values
// in FieldContext.FormData by dotted path. And, Or, Not, When and
// Conditional compose other rules, and Custom adapts a plain function.
//
// A Registry maps names to predicates so that schemas can refer to checks
// by name.
package validator
