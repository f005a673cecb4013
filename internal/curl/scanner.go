package curl

import "strings"

// scan splits a command line into shell words with quotes removed. It
// never fails: an unterminated quote extends to the end of the input. An
// empty quoted word ('') is still a word.
func scan(input string) []string {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		inQuote rune // 0, '"' or '\''
	)

	flush := func() {
		if inWord {
			words = append(words, current.String())
		}

		current.Reset()

		inWord = false
	}

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch inQuote {
		case '\'':
			switch {
			case r == '\'':
				inQuote = 0
			case r == '\\' && continuationLen(runes, i+1) > 0:
				// Line continuations are joined even inside single quotes.
				i += continuationLen(runes, i+1)
			default:
				current.WriteRune(r)
			}

			continue

		case '"':
			switch {
			case r == '"':
				inQuote = 0
			case r == '\\' && i+1 < len(runes) && isDoubleQuoteEscapable(runes[i+1]):
				i++
				current.WriteRune(runes[i])
			case r == '\\' && continuationLen(runes, i+1) > 0:
				i += continuationLen(runes, i+1)
			default:
				current.WriteRune(r)
			}

			continue
		}

		switch {
		case r == '\\':
			if n := continuationLen(runes, i+1); n > 0 {
				// Line continuation: acts as a separator.
				i += n
				flush()

				continue
			}

			if i+1 < len(runes) {
				i++
				inWord = true

				current.WriteRune(runes[i])

				continue
			}

			inWord = true

			current.WriteRune(r)

		case r == '\'' || r == '"':
			inQuote = r
			inWord = true

		case isSpace(r):
			flush()

		default:
			inWord = true

			current.WriteRune(r)
		}
	}

	flush()

	return words
}

// continuationLen returns how many runes after a backslash form a line
// break ("\n" or "\r\n"), or 0.
func continuationLen(runes []rune, i int) int {
	if i < len(runes) && runes[i] == '\n' {
		return 1
	}

	if i+1 < len(runes) && runes[i] == '\r' && runes[i+1] == '\n' {
		return 2
	}

	return 0
}

func isDoubleQuoteEscapable(r rune) bool {
	return r == '"' || r == '\\' || r == '`' || r == '$'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
