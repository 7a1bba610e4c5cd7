package sanitizer

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// ToTitle upper-cases the first letter of every word and lower-cases the
// rest, using Unicode word boundaries.
func ToTitle(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(language.Und).String(s)
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// words splits s at non-alphanumeric runes and at lower-to-upper case
// changes, so "userID", "user_id" and "User ID" all give [user id].
func words(s string) []string {
	var (
		out  []string
		cur  []rune
		prev rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return out
}

// ToKebabCase converts a string to kebab-case.
func ToKebabCase(s string) string {
	return strings.Join(words(s), "-")
}

// ToSnakeCase converts a string to snake_case.
func ToSnakeCase(s string) string {
	return strings.Join(words(s), "_")
}

// ToCamelCase converts a string to camelCase: the first word lower-cased,
// every later word capitalized.
func ToCamelCase(s string) string {
	parts := words(s)
	for i := 1; i < len(parts); i++ {
		parts[i] = Capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

// CollapseSpaces replaces runs of whitespace with a single space and trims
// the result.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// StripHTML removes script and style blocks and every other tag, then
// unescapes HTML entities.
func StripHTML(s string) string {
	s = scriptRegex.ReplaceAllString(s, "")
	s = htmlTagRegex.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

// EscapeHTML escapes HTML special characters.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// KeepAlphanumeric keeps only letters, digits and spaces.
func KeepAlphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// KeepDigits keeps only numeric digits.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
