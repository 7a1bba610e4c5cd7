package schema_test

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poly1603/ldesign-validator/pkg/logger"
	"github.com/poly1603/ldesign-validator/pkg/schema"
	"github.com/poly1603/ldesign-validator/pkg/validator"
)

func TestSchema_Builder(t *testing.T) {
	s := schema.New().
		Field("b", schema.Field{Required: true}).
		Field("a", schema.Field{Type: schema.TypeString}).
		Field("b", schema.Field{MinLength: schema.Ptr(2)})

	assert.Equal(t, []string{"b", "a"}, s.Names())
	assert.Equal(t, 2, s.Len())

	fromMap := schema.FromMap(map[string]schema.Field{
		"zeta":  {},
		"alpha": {},
		"mid":   {},
	})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, fromMap.Names())
}

func TestValidator_DefaultApplied(t *testing.T) {
	s := schema.New().Field("age", schema.Field{
		Type:    schema.TypeNumber,
		Min:     schema.Ptr(18.0),
		Default: 18,
	})
	record := map[string]any{}

	res := schema.NewValidator(s).Validate(context.Background(), record)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.NoError(t, res.Err())
	assert.Equal(t, 18, res.Data["age"])
	assert.Empty(t, record, "input record is not modified")
}

func TestValidator_ArrayItems(t *testing.T) {
	s := schema.New().Field("tags", schema.Field{
		Type:  schema.TypeArray,
		Items: &schema.Field{Type: schema.TypeString, MinLength: schema.Ptr(2)},
	})

	t.Run("first failing index", func(t *testing.T) {
		res := schema.NewValidator(s).Validate(context.Background(), map[string]any{
			"tags": []any{"ok", "a", "b"},
		})
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)

		err := res.Errors[0]
		assert.Equal(t, "tags", err.Field)
		assert.Equal(t, validator.CodeArrayItemInvalid, err.Code)
		assert.Equal(t, "items", err.Rule)
		assert.Contains(t, err.Message, "index 1")
		assert.Contains(t, err.Message, "at least 2 characters")
	})

	t.Run("all failing indexes", func(t *testing.T) {
		res := schema.NewValidator(s, schema.WithAllItemErrors(true)).Validate(context.Background(), map[string]any{
			"tags": []any{"ok", "a", "b"},
		})
		require.Len(t, res.Errors, 2)
		assert.Contains(t, res.Errors[0].Message, "index 1")
		assert.Contains(t, res.Errors[1].Message, "index 2")
		assert.Len(t, res.ErrorMap["tags"], 2)
	})

	t.Run("typed slices", func(t *testing.T) {
		res := schema.NewValidator(s).Validate(context.Background(), map[string]any{
			"tags": []string{"go", "x"},
		})
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Message, "index 1")
	})

	t.Run("wrong element type", func(t *testing.T) {
		res := schema.NewValidator(s).Validate(context.Background(), map[string]any{
			"tags": []any{"ok", 42},
		})
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Message, "must be of type string")
	})
}

func TestValidator_StructuralChecks(t *testing.T) {
	s := schema.New().
		Field("email", schema.Field{Type: schema.TypeEmail, Required: true}).
		Field("website", schema.Field{Type: schema.TypeURL}).
		Field("age", schema.Field{Type: schema.TypeNumber, Min: schema.Ptr(18.0), Max: schema.Ptr(120.0)}).
		Field("name", schema.Field{Type: schema.TypeString, Min: schema.Ptr(2.0), MaxLength: schema.Ptr(5)}).
		Field("zip", schema.Field{Pattern: regexp.MustCompile(`^\d{5}$`)}).
		Field("role", schema.Field{Enum: []any{"admin", "user"}}).
		Field("active", schema.Field{Type: schema.TypeBoolean}).
		Field("born", schema.Field{Type: schema.TypeDate})

	tests := []struct {
		name  string
		field string
		value any
		code  string
		rule  string
	}{
		{"missing required", "email", nil, validator.CodeRequired, "required"},
		{"empty required", "email", "", validator.CodeRequired, "required"},
		{"bad email", "email", "nope", validator.CodeInvalidEmail, "type"},
		{"bad url", "website", "example", validator.CodeInvalidURL, "type"},
		{"not a number", "age", "old", validator.CodeInvalidNumber, "type"},
		{"too young", "age", 17, validator.CodeMinValue, "min"},
		{"too old", "age", 121.5, validator.CodeMaxValue, "max"},
		{"numeric string bound", "age", "16", validator.CodeMinValue, "min"},
		{"short name", "name", "a", validator.CodeMinLength, "min"},
		{"long name", "name", "abcdef", validator.CodeMaxLength, "maxLength"},
		{"wrong type", "name", 42, validator.CodeTypeMismatch, "type"},
		{"bad zip", "zip", "1234a", validator.CodePatternMismatch, "pattern"},
		{"unknown role", "role", "root", validator.CodeNotInEnum, "enum"},
		{"not boolean", "active", "yes", validator.CodeTypeMismatch, "type"},
		{"bad date", "born", "someday", validator.CodeInvalidDate, "type"},
	}

	valid := map[string]any{
		"email":   "a@example.com",
		"website": "https://example.com",
		"age":     30,
		"name":    "Ann",
		"zip":     "12345",
		"role":    "user",
		"active":  true,
		"born":    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	v := schema.NewValidator(s)

	t.Run("valid record", func(t *testing.T) {
		res := v.Validate(context.Background(), valid)
		assert.True(t, res.Valid, res.Err())
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := make(map[string]any, len(valid))
			for k, val := range valid {
				record[k] = val
			}
			record[tt.field] = tt.value

			res := v.Validate(context.Background(), record)
			assert.False(t, res.Valid)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.field, res.Errors[0].Field)
			assert.Equal(t, tt.code, res.Errors[0].Code)
			assert.Equal(t, tt.rule, res.Errors[0].Rule)
		})
	}

	t.Run("optional empty values are skipped", func(t *testing.T) {
		res := v.Validate(context.Background(), map[string]any{"email": "a@example.com"})
		assert.True(t, res.Valid, res.Err())
	})
}

func TestValidator_ErrorOrderAndMap(t *testing.T) {
	s := schema.New().
		Field("first", schema.Field{Required: true}).
		Field("second", schema.Field{Type: schema.TypeNumber}).
		Field("third", schema.Field{Required: true})

	res := schema.NewValidator(s).Validate(context.Background(), map[string]any{"second": "x"})
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, []string{"first", "second", "third"}, res.Errors.Fields())

	for _, err := range res.Errors {
		assert.Equal(t, []validator.ValidationError{err}, res.ErrorMap[err.Field])
	}
	assert.Len(t, res.ErrorMap, 3)

	var ve validator.ValidationErrors
	require.ErrorAs(t, res.Err(), &ve)
	assert.True(t, ve.Has("second"))
}

func TestValidator_StopOnFirstError(t *testing.T) {
	s := schema.New().
		Field("first", schema.Field{Required: true}).
		Field("second", schema.Field{Required: true})

	res := schema.NewValidator(s, schema.WithStopOnFirstError(true)).Validate(context.Background(), nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "first", res.Errors[0].Field)
	assert.False(t, res.Valid)
}

func TestValidator_StopOnFirstErrorProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("at most one error with stop on first error", prop.ForAll(
		func(values []string, concurrent bool) bool {
			s := schema.New()
			record := make(map[string]any, len(values))
			for i, val := range values {
				name := fmt.Sprintf("f%d", i)
				s.Field(name,
					schema.Field{Required: true, MinLength: schema.Ptr(3)},
					schema.Field{Items: &schema.Field{MinLength: schema.Ptr(5)}},
				)
				record[name] = val
			}

			opts := []schema.Option{schema.WithStopOnFirstError(true), schema.WithAllItemErrors(true)}
			if concurrent {
				opts = append(opts, schema.WithConcurrency(4))
			}
			res := schema.NewValidator(s, opts...).Validate(context.Background(), record)
			return len(res.Errors) <= 1 && res.Valid == (len(res.Errors) == 0)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestValidator_Transforms(t *testing.T) {
	s := schema.New().
		Field("email", schema.Field{Type: schema.TypeEmail, Transform: []string{"trim", "lowercase"}}).
		Field("password", schema.Field{Transform: []string{"trim"}}).
		Field("confirm", schema.Field{Rules: []validator.Rule{validator.MatchField("password")}}).
		Field("tags", schema.Field{Transform: []string{"compact"}, Items: &schema.Field{Transform: []string{"uppercase"}}}).
		Field("name", schema.Field{TransformFunc: func(v any) any {
			str, _ := v.(string)
			return strings.Repeat(str, 2)
		}})

	record := map[string]any{
		"email":    "  John@Example.COM ",
		"password": " secret ",
		"confirm":  "secret",
		"tags":     []any{"a", "", "b"},
		"name":     "ab",
	}

	t.Run("enabled", func(t *testing.T) {
		res := schema.NewValidator(s, schema.WithAutoTransform(true)).Validate(context.Background(), record)
		assert.True(t, res.Valid, res.Err())
		assert.Equal(t, "john@example.com", res.Data["email"])
		assert.Equal(t, "secret", res.Data["password"])
		assert.Equal(t, []any{"A", "B"}, res.Data["tags"])
		assert.Equal(t, "abab", res.Data["name"])

		assert.Equal(t, "  John@Example.COM ", record["email"])
		assert.Equal(t, []any{"a", "", "b"}, record["tags"])
	})

	t.Run("disabled", func(t *testing.T) {
		res := schema.NewValidator(s).Validate(context.Background(), record)
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"email", "confirm"}, res.Errors.Fields())
		assert.Equal(t, validator.CodeFieldMismatch, res.ErrorMap["confirm"][0].Code)
	})

	t.Run("unknown transform", func(t *testing.T) {
		bad := schema.New().
			Field("name", schema.Field{Transform: []string{"reverse"}}).
			Field("next", schema.Field{Required: true})

		res := schema.NewValidator(bad, schema.WithAutoTransform(true), schema.WithLogger(logger.Nop())).
			Validate(context.Background(), map[string]any{"name": "x", "next": "y"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeRuleError, res.Errors[0].Code)
		assert.Equal(t, "transform", res.Errors[0].Rule)
	})
}

func TestValidator_NestedPaths(t *testing.T) {
	s := schema.New().
		Field("address.city", schema.Field{Required: true, Transform: []string{"title"}}).
		Field("address.country", schema.Field{Default: "NO"})

	address := map[string]any{"city": "oslo"}
	record := map[string]any{"address": address}

	res := schema.NewValidator(s, schema.WithAutoTransform(true)).Validate(context.Background(), record)
	require.True(t, res.Valid, res.Err())

	got, ok := res.Data["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Oslo", got["city"])
	assert.Equal(t, "NO", got["country"])
	assert.Equal(t, map[string]any{"city": "oslo"}, address, "nested input map is not modified")

	res = schema.NewValidator(s).Validate(context.Background(), map[string]any{})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "address.city", res.Errors[0].Field)
}

func TestValidator_CustomChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("check runs last", func(t *testing.T) {
		called := false
		s := schema.New().Field("username", schema.Field{
			MinLength: schema.Ptr(3),
			Check: func(_ context.Context, value any, _ validator.FieldContext) validator.Outcome {
				called = true
				if value == "admin" {
					return validator.Fail("TAKEN", "username is taken")
				}
				return validator.Pass()
			},
		})
		v := schema.NewValidator(s)

		res := v.Validate(ctx, map[string]any{"username": "ab"})
		assert.Equal(t, validator.CodeMinLength, res.Errors[0].Code)
		assert.False(t, called)

		res = v.Validate(ctx, map[string]any{"username": "admin"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "TAKEN", res.Errors[0].Code)
		assert.Equal(t, "validator", res.Errors[0].Rule)
		assert.True(t, called)
	})

	t.Run("panicking check is contained", func(t *testing.T) {
		s := schema.New().Field("x", schema.Field{
			Check: func(context.Context, any, validator.FieldContext) validator.Outcome { panic("boom") },
		})

		res := schema.NewValidator(s, schema.WithLogger(logger.Nop())).Validate(ctx, map[string]any{"x": 1})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeRuleError, res.Errors[0].Code)
	})

	t.Run("conditional rules run on empty values", func(t *testing.T) {
		s := schema.New().
			Field("phone", schema.Field{}).
			Field("country_code", schema.Field{Rules: []validator.Rule{validator.RequiredIf("phone")}})
		v := schema.NewValidator(s)

		res := v.Validate(ctx, map[string]any{"phone": "12345678"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeRequiredIf, res.Errors[0].Code)

		assert.True(t, v.Validate(ctx, map[string]any{}).Valid)
	})

	t.Run("field message overrides", func(t *testing.T) {
		s := schema.New().Field("age", schema.Field{
			Type:    schema.TypeNumber,
			Min:     schema.Ptr(18.0),
			Message: "you must be an adult",
		})

		res := schema.NewValidator(s).Validate(ctx, map[string]any{"age": 12})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "you must be an adult", res.Errors[0].Message)
		assert.Equal(t, validator.CodeMinValue, res.Errors[0].Code)
	})

	t.Run("first failing definition wins", func(t *testing.T) {
		s := schema.New().Field("code",
			schema.Field{MinLength: schema.Ptr(4)},
			schema.Field{Pattern: regexp.MustCompile(`^[A-Z]+$`)},
		)
		v := schema.NewValidator(s)

		res := v.Validate(ctx, map[string]any{"code": "ab"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeMinLength, res.Errors[0].Code)

		res = v.Validate(ctx, map[string]any{"code": "abcd"})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodePatternMismatch, res.Errors[0].Code)
	})

	t.Run("chain options share a cache", func(t *testing.T) {
		s := schema.New().Field("email", schema.Field{Rules: []validator.Rule{validator.Email()}})
		v := schema.NewValidator(s, schema.WithChainOptions(validator.WithNewCache()))
		defer v.Close()

		for range 3 {
			assert.True(t, v.Validate(ctx, map[string]any{"email": "a@example.com"}).Valid)
		}
	})
}

func TestValidator_Concurrency(t *testing.T) {
	slow := func(code string) validator.Rule {
		return validator.Rule{
			Check: func(ctx context.Context, _ any, _ validator.FieldContext) validator.Outcome {
				return validator.Go(ctx, func(context.Context) (validator.Result, error) {
					time.Sleep(10 * time.Millisecond)
					return validator.Invalid(code, "slow failure"), nil
				})
			},
		}
	}

	s := schema.New().
		Field("a", schema.Field{Rules: []validator.Rule{slow("A")}}).
		Field("b", schema.Field{Required: true}).
		Field("c", schema.Field{Transform: []string{"trim"}}).
		Field("d", schema.Field{Rules: []validator.Rule{validator.MatchField("c")}}).
		Field("e", schema.Field{Rules: []validator.Rule{slow("E")}})

	record := map[string]any{"a": "x", "c": " v ", "d": "v", "e": "y"}

	sequential := schema.NewValidator(s, schema.WithAutoTransform(true)).Validate(context.Background(), record)
	concurrent := schema.NewValidator(s, schema.WithAutoTransform(true), schema.WithConcurrency(4)).Validate(context.Background(), record)

	assert.Equal(t, sequential.Errors, concurrent.Errors)
	assert.Equal(t, []string{"a", "b", "e"}, concurrent.Errors.Fields())
	assert.Equal(t, "v", concurrent.Data["c"])

	stopped := schema.NewValidator(s, schema.WithConcurrency(4), schema.WithStopOnFirstError(true)).Validate(context.Background(), record)
	require.Len(t, stopped.Errors, 1)
	assert.Equal(t, "a", stopped.Errors[0].Field)
}
