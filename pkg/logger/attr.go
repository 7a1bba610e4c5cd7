package logger

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// maxValueLen caps how much of a validated value ends up in a log record.
const maxValueLen = 64

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Rule records the rule name under the key "rule". Anonymous rules are
// logged as "<anonymous>".
func Rule(name string) slog.Attr {
	if name == "" {
		name = "<anonymous>"
	}
	return slog.String("rule", name)
}

// Field records the validated field under the key "field".
// If name is empty, it returns an empty Attr.
func Field(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("field", name)
}

// Code records a result code under the key "code".
func Code(code string) slog.Attr {
	if code == "" {
		return slog.Attr{}
	}
	return slog.String("code", code)
}

// Value records a short textual form of a validated value under "value".
func Value(v any) slog.Attr {
	s := fmt.Sprintf("%v", v)
	if len(s) > maxValueLen {
		cut := maxValueLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return slog.String("value", s)
}

// Count records an integer counter under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
