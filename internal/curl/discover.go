package curl

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snippet is a curl command found inside a document.
type Snippet struct {
	Command string `json:"command"`
	APIName string `json:"apiName,omitempty"`
	APIURL  string `json:"apiUrl,omitempty"`
}

var fencedCurlRe = regexp.MustCompile("(?i)```(?:bash|sh)?\\s*(curl\\s+[^`]+)```")

// FromMarkdown returns the first fenced curl block of a Markdown document
// along with its "API Name:" and "API URL:" lines. The second result is
// false when the document has no curl block; the API lines are still
// reported in that case.
func FromMarkdown(text string) (Snippet, bool) {
	var s Snippet

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "api url:") || strings.Contains(lower, "apiurl:"):
			s.APIURL = afterColon(line)
		case strings.Contains(lower, "api name:") || strings.Contains(lower, "apiname:"):
			s.APIName = afterColon(line)
		}
	}

	m := fencedCurlRe.FindStringSubmatch(text)
	if m == nil {
		return s, false
	}

	s.Command = strings.TrimSpace(m[1])

	return s, true
}

// FindInText returns every fenced curl block in text. When there are none
// and the text itself starts with "curl", the whole text is one snippet.
func FindInText(text string) []Snippet {
	var out []Snippet

	for _, m := range fencedCurlRe.FindAllStringSubmatch(text, -1) {
		out = append(out, Snippet{Command: strings.TrimSpace(m[1])})
	}

	if len(out) > 0 {
		return out
	}

	if trimmed := strings.TrimSpace(text); startsWithCurl(trimmed) {
		out = append(out, Snippet{Command: trimmed})
	}

	return out
}

// FindInHTML returns the curl commands held in <pre> and <code> elements,
// in document order. A <code> inside a <pre> is reported once.
func FindInHTML(r io.Reader) ([]Snippet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var out []Snippet

	doc.Find("pre, code").Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "code" && sel.ParentsFiltered("pre").Length() > 0 {
			return
		}

		text := strings.TrimSpace(sel.Text())
		if !startsWithCurl(text) {
			return
		}

		out = append(out, Snippet{Command: text})
	})

	return out, nil
}

func afterColon(line string) string {
	_, rest, _ := strings.Cut(line, ":")
	return strings.TrimSpace(rest)
}

func startsWithCurl(text string) bool {
	if len(text) < 5 || !strings.EqualFold(text[:4], "curl") {
		return false
	}

	return isSpace(rune(text[4]))
}
