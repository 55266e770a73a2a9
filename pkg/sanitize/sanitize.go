// Package sanitize strips markup from free-text fields submitted by the public
// registration form before they are stored or echoed into status emails.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxPasses bounds the decode/sanitize loop for nested entity encodings
const maxPasses = 5

// Text removes every HTML element from s and returns plain, unescaped text
// with surrounding whitespace trimmed. Entity-encoded markup is decoded and
// sanitized again until the value is stable, so decoding the result can never
// produce an element.
func Text(s string) string {
	if s == "" {
		return ""
	}
	for i := 0; i < maxPasses; i++ {
		decoded := html.UnescapeString(s)
		clean := html.UnescapeString(strict.Sanitize(decoded))
		if clean == s {
			return strings.TrimSpace(clean)
		}
		s = clean
	}
	// still changing: keep the escaped form rather than risk live markup
	return strings.TrimSpace(strict.Sanitize(html.UnescapeString(s)))
}

// Texts applies Text to each element and drops entries that end up empty.
func Texts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if clean := Text(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
