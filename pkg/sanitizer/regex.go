package sanitizer

import "regexp"

// Pre-compiled regular expressions for performance
var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	scriptRegex     = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)>`)
)
