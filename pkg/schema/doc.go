// Package schema validates records (map[string]any) against a declarative,
// ordered set of field definitions.
//
// Each field is processed in declaration order: a missing value is replaced
// by its Default, transforms are applied when auto transform is enabled, and
// then the structural checks run (required, type, min/max, lengths,
// pattern, enum), followed by element checks for arrays (Items) and finally
// the field's chain rules and custom Check. The first failing check of a
// field is reported and the next field is processed.
//
//	s := schema.New().
//	    Field("email", schema.Field{Type: schema.TypeEmail, Required: true}).
//	    Field("age", schema.Field{Type: schema.TypeNumber, Min: schema.Ptr(18.0), Default: 18}).
//	    Field("confirm", schema.Field{Rules: []validator.Rule{validator.MatchField("password")}})
//
//	res := schema.NewValidator(s, schema.WithAutoTransform(true)).Validate(ctx, record)
//	if err := res.Err(); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// Cross-field rules see the record being validated, including the defaults
// and transformed values of fields declared before them. With
// WithConcurrency every default and transform is applied before any field is
// checked. Errors are always reported in declaration order.
package schema
