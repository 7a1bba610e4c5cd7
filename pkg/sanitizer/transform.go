package sanitizer

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Transform maps a field value to its cleaned form. Transforms never fail:
// values they cannot handle are returned unchanged.
type Transform func(value any) any

// String lifts a string function into a Transform. Non-string values pass
// through unchanged.
func String(fn func(string) string) Transform {
	return func(value any) any {
		if s, ok := value.(string); ok {
			return fn(s)
		}
		return value
	}
}

var builtins = map[string]Transform{
	"trim":            String(Trim),
	"lowercase":       String(ToLower),
	"uppercase":       String(ToUpper),
	"title":           String(ToTitle),
	"capitalize":      String(Capitalize),
	"kebab":           String(ToKebabCase),
	"snake":           String(ToSnakeCase),
	"camel":           String(ToCamelCase),
	"collapse_spaces": String(CollapseSpaces),
	"strip_html":      String(StripHTML),
	"escape_html":     String(EscapeHTML),
	"alphanumeric":    String(KeepAlphanumeric),
	"digits":          String(KeepDigits),
	"number":          ToNumber,
	"integer":         ToInteger,
	"boolean":         ToBoolean,
	"compact":         Compact,
}

// Lookup returns the built-in transform registered under name.
func Lookup(name string) (Transform, bool) {
	t, ok := builtins[name]
	return t, ok
}

// Names lists the built-in transform names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Chain composes the named transforms, applied left to right.
func Chain(names ...string) (Transform, error) {
	steps := make([]func(any) any, 0, len(names))
	for _, name := range names {
		t, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
		}
		steps = append(steps, t)
	}
	return Compose(steps...), nil
}

// ToNumber converts numeric strings to float64. Other values, including
// strings that do not parse, are returned unchanged.
func ToNumber(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return value
	}
	return f
}

// ToInteger converts numeric strings and floats to int, truncating toward
// zero. Values out of the int range are returned unchanged.
func ToInteger(value any) any {
	var f float64
	switch v := value.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return value
		}
		f = parsed
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return value
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return value
	}
	return int(math.Trunc(f))
}

// ToBoolean interprets common form values: true/false, 1/0, yes/no and
// on/off, case-insensitively. Numbers map to their truthiness.
func ToBoolean(value any) any {
	switch v := value.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off", "":
			return false
		}
		return value
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return value
}

// Compact drops nil and empty-string elements from slices. Other values
// are returned unchanged; the input slice is never modified.
func Compact(value any) any {
	switch v := value.(type) {
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if !blank(item) {
				out = append(out, item)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item != "" {
				out = append(out, item)
			}
		}
		return out
	}
	return value
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
