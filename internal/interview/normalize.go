package interview

import (
	"regexp"
	"strings"
)

// Whitespace covers \s plus \v, the Unicode separators (NBSP, em space,
// line separators) and the byte order mark.
var (
	nonWord    = regexp.MustCompile(`[^\w\s\v\p{Z}\x{FEFF}]`)
	whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// Normalize reduces a question to the form used for duplicate detection.
// It is never used for display.
func Normalize(q string) string {
	q = strings.ToLower(q)
	q = nonWord.ReplaceAllString(q, "")
	q = whitespace.ReplaceAllString(q, " ")
	return strings.TrimSpace(q)
}

// SameQuestion reports whether a and b normalize to the same text.
func SameQuestion(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func normalizeAll(questions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		set[Normalize(q)] = struct{}{}
	}
	return set
}
