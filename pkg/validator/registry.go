package validator

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps stable rule names to predicates. Schema type checks and
// callers that configure rules by name look predicates up here.
type Registry struct {
	mu         sync.RWMutex
	predicates map[string]Predicate
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{predicates: make(map[string]Predicate)}
}

// Builtins returns a new registry holding every parameterless built-in
// predicate. Each call returns an independent instance.
func Builtins() *Registry {
	r := NewRegistry()
	r.predicates = map[string]Predicate{
		"email":        emailPredicate,
		"url":          urlPredicate,
		"uuid":         uuidPredicate,
		"phone":        phonePredicate,
		"ip":           ipPredicate,
		"hexcolor":     hexColorPredicate,
		"slug":         slugPredicate,
		"creditcard":   creditCardPredicate,
		"json":         jsonPredicate,
		"alpha":        alphaPredicate,
		"alphanumeric": alphanumericPredicate,
		"numeric":      numericPredicate,
		"lowercase":    lowercasePredicate,
		"uppercase":    uppercasePredicate,
		"number":       numberPredicate,
		"integer":      integerPredicate,
		"date":         datePredicate,
		"string":       kindPredicate("string"),
		"bool":         kindPredicate("boolean"),
		"array":        kindPredicate("array"),
		"object":       kindPredicate("object"),
	}
	return r
}

// Register adds or replaces a predicate. It returns r for chaining.
func (r *Registry) Register(name string, p Predicate) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates[name] = p
	return r
}

// Lookup returns the predicate registered under name.
func (r *Registry) Lookup(name string) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.predicates[name]
	return p, ok
}

// Rule builds a named Rule from a registered predicate.
func (r *Registry) Rule(name string) (Rule, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return Rule{Name: name, Check: p}, nil
}

// MustRule is Rule that panics for unknown names.
func (r *Registry) MustRule(name string) Rule {
	rule, err := r.Rule(name)
	if err != nil {
		panic(err)
	}
	return rule
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.predicates))
}

func kindPredicate(kind string) Predicate {
	return func(_ context.Context, value any, _ FieldContext) Outcome {
		if IsEmpty(value) {
			return Pass()
		}
		if got := KindOf(value); got != kind {
			return Done(Invalidf(CodeTypeMismatch, "must be of type %s", kind).WithMeta("actual", got))
		}
		return Pass()
	}
}
