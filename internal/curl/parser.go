package curl

import (
	"encoding/base64"
	"errors"
	"strings"

	"curl-mapper/internal/value"
)

// ErrNoURL is returned when a command line contains no http(s) URL.
var ErrNoURL = errors.New("no url found in command")

type flagKind int

const (
	flagSwitch flagKind = iota
	flagMethod
	flagHeader
	flagData
	flagURL
	flagUserAgent
	flagReferer
	flagCookie
	flagUser
	// flagArg takes an argument that is not used.
	flagArg
)

var longFlags = map[string]flagKind{
	"--request":     flagMethod,
	"--header":      flagHeader,
	"--data":        flagData,
	"--data-raw":    flagData,
	"--data-binary": flagData,
	"--data-ascii":  flagData,
	"--url":         flagURL,
	"--user-agent":  flagUserAgent,
	"--referer":     flagReferer,
	"--cookie":      flagCookie,
	"--user":        flagUser,

	"--data-urlencode":  flagArg,
	"--form":            flagArg,
	"--form-string":     flagArg,
	"--output":          flagArg,
	"--proxy":           flagArg,
	"--proxy-user":      flagArg,
	"--max-time":        flagArg,
	"--connect-timeout": flagArg,
	"--cookie-jar":      flagArg,
	"--cacert":          flagArg,
	"--capath":          flagArg,
	"--cert":            flagArg,
	"--cert-type":       flagArg,
	"--key":             flagArg,
	"--key-type":        flagArg,
	"--write-out":       flagArg,
	"--upload-file":     flagArg,
	"--retry":           flagArg,
	"--retry-delay":     flagArg,
	"--resolve":         flagArg,
	"--config":          flagArg,
	"--limit-rate":      flagArg,
	"--max-redirs":      flagArg,
	"--oauth2-bearer":   flagArg,
	"--interface":       flagArg,
	"--range":           flagArg,
	"--dump-header":     flagArg,
	"--trace":           flagArg,
	"--trace-ascii":     flagArg,
	"--unix-socket":     flagArg,
	"--connect-to":      flagArg,
	"--aws-sigv4":       flagArg,
}

var shortFlags = map[byte]flagKind{
	'X': flagMethod,
	'H': flagHeader,
	'd': flagData,
	'A': flagUserAgent,
	'e': flagReferer,
	'b': flagCookie,
	'u': flagUser,

	'F': flagArg,
	'o': flagArg,
	'x': flagArg,
	'U': flagArg,
	'm': flagArg,
	'c': flagArg,
	'E': flagArg,
	'w': flagArg,
	'T': flagArg,
	'K': flagArg,
	'r': flagArg,
	'D': flagArg,
	'C': flagArg,
	'Y': flagArg,
	'y': flagArg,
	'z': flagArg,
	'Q': flagArg,
	'P': flagArg,
}

// Parse turns a curl command line into a Request.
//
// Only a missing URL is an error. Unknown flags are ignored, the method
// defaults to GET and a body that is not JSON is kept as a string value.
func Parse(text string) (*Request, error) {
	p := &parser{words: scan(text)}
	if len(p.words) > 0 && strings.EqualFold(p.words[0], "curl") {
		p.pos = 1
	}

	p.run()

	if p.url == "" {
		return nil, ErrNoURL
	}

	req := &Request{
		Method:  DefaultMethod,
		URL:     p.url,
		Headers: p.headers,
	}

	if p.method != "" {
		req.Method = p.method
	}

	if p.hasBody {
		req.BodyRaw = p.body

		body, err := value.DecodeJSON([]byte(p.body))
		if err != nil {
			body = value.String(p.body)
		} else {
			req.BodyDecoded = true
		}

		req.Body = &body
	}

	return req, nil
}

type parser struct {
	words []string
	pos   int

	url     string
	method  string
	headers Headers
	body    string
	hasBody bool
}

func (p *parser) run() {
	for p.pos < len(p.words) {
		text := p.words[p.pos]
		p.pos++

		switch {
		case strings.HasPrefix(text, "--") && len(text) > 2:
			p.long(text)
		case strings.HasPrefix(text, "-") && len(text) > 1:
			p.short(text)
		default:
			p.positional(text)
		}
	}
}

// next consumes the following word as a flag argument.
func (p *parser) next() (string, bool) {
	if p.pos >= len(p.words) {
		return "", false
	}

	arg := p.words[p.pos]
	p.pos++

	return arg, true
}

func (p *parser) long(text string) {
	name, attached, hasAttached := strings.Cut(text, "=")

	kind, ok := longFlags[name]
	if !ok || kind == flagSwitch {
		return
	}

	arg := attached
	if !hasAttached {
		var found bool
		if arg, found = p.next(); !found {
			return
		}
	}

	p.apply(kind, arg)
}

// short handles "-X POST", "-XPOST" and bundled switches such as "-sSL" or
// "-sX POST".
func (p *parser) short(text string) {
	for i := 1; i < len(text); i++ {
		kind, ok := shortFlags[text[i]]
		if !ok || kind == flagSwitch {
			continue
		}

		arg := text[i+1:]
		if arg == "" {
			var found bool
			if arg, found = p.next(); !found {
				return
			}
		}

		p.apply(kind, arg)

		return
	}
}

func (p *parser) positional(text string) {
	if p.url != "" {
		return
	}

	if u, ok := extractURL(text); ok {
		p.url = u
	}
}

func (p *parser) apply(kind flagKind, arg string) {
	switch kind {
	case flagMethod:
		if p.method == "" {
			p.method = strings.ToUpper(strings.TrimSpace(arg))
		}

	case flagHeader:
		name, val, ok := strings.Cut(arg, ":")
		if !ok {
			return
		}

		name = strings.TrimSpace(name)
		if name == "" {
			return
		}

		p.headers.Set(name, strings.TrimSpace(val))

	case flagData:
		if !p.hasBody {
			p.body = arg
			p.hasBody = true
		}

	case flagURL:
		p.positional(arg)

	case flagUserAgent:
		p.headers.Set("User-Agent", arg)

	case flagReferer:
		p.headers.Set("Referer", arg)

	case flagCookie:
		// Without "=" the argument names a cookie file.
		if strings.Contains(arg, "=") {
			p.headers.Set("Cookie", arg)
		}

	case flagUser:
		p.headers.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(arg)))

	case flagSwitch, flagArg:
	}
}

// extractURL accepts text starting with an http(s) scheme and cuts it at
// the first whitespace or quote.
func extractURL(text string) (string, bool) {
	var scheme string

	switch {
	case strings.HasPrefix(text, "http://"):
		scheme = "http://"
	case strings.HasPrefix(text, "https://"):
		scheme = "https://"
	default:
		return "", false
	}

	if i := strings.IndexAny(text, " \t\r\n\f\v'\""); i >= 0 {
		text = text[:i]
	}

	if len(text) == len(scheme) {
		return "", false
	}

	return text, true
}
