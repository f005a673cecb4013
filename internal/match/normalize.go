package match

import (
	"strings"
	"unicode"

	"curl-mapper/internal/field"
)

// identSuffixes are tried longest first; the first one that leaves a
// non-empty name is removed.
var identSuffixes = []string{"timestamp", "ids", "utc", "id", "at"}

// NormalizeIdent folds a key, header name or dotted path into one lowercase
// word: "first_name", "firstName" and "First-Name" all give "firstname".
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(words(s), ""))
}

// NormalizeIdentWithSuffixStrip is NormalizeIdent minus one trailing
// suffix such as "id" or "at", so "userId" and "user" compare equal.
func NormalizeIdentWithSuffixStrip(s string) string {
	n := NormalizeIdent(s)

	for _, suffix := range identSuffixes {
		if trimmed, ok := strings.CutSuffix(n, suffix); ok && trimmed != "" {
			return trimmed
		}
	}

	return n
}

// NormalizePath normalizes a dotted field path with its "body." or
// "header." root removed, so "body.user.firstName" and "user.first_name"
// compare equal.
func NormalizePath(path string) string {
	return NormalizeIdent(field.TrimRoot(path))
}

// words splits s at separators and case changes.
//
//	"userID"    -> [user ID]
//	"XMLParser" -> [XML Parser]
//	"X-API-Key" -> [X API Key]
func words(s string) []string {
	var out []string

	runes := []rune(s)
	start := -1

	for i, r := range runes {
		if isSeparator(r) {
			if start >= 0 {
				out = append(out, string(runes[start:i]))
				start = -1
			}

			continue
		}

		switch {
		case start < 0:
			start = i
		case wordBoundary(runes, i):
			out = append(out, string(runes[start:i]))
			start = i
		}
	}

	if start >= 0 {
		out = append(out, string(runes[start:]))
	}

	return out
}

// wordBoundary reports whether a new word starts at i, which follows a
// non-separator rune: either lower-to-upper ("orderID") or the last capital
// of an acronym followed by lowercase ("XMLParser").
func wordBoundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// isSeparator includes '.' so whole paths normalize as one identifier.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
