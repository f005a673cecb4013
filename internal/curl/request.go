package curl

import (
	"bytes"
	"encoding/json"
	"fmt"

	"curl-mapper/internal/value"
)

// DefaultMethod is used when the command has no -X flag.
const DefaultMethod = "GET"

// Request is the structured form of a curl command.
type Request struct {
	Method  string  `json:"method"`
	URL     string  `json:"url"`
	Headers Headers `json:"headers"`
	// Body is nil when the command carries no data flag. When the data is
	// not valid JSON, Body holds it as a String value and BodyDecoded is false.
	Body        *value.Value `json:"body,omitempty"`
	BodyRaw     string       `json:"bodyRaw,omitempty"`
	BodyDecoded bool         `json:"bodyDecoded"`
}

// HasBody reports whether the command carried a data flag.
func (r *Request) HasBody() bool {
	return r != nil && r.Body != nil
}

// Header is a single request header.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Headers is an insertion-ordered header map. Setting an existing name
// replaces its value but keeps its first-seen position. Names are compared
// exactly as written.
type Headers struct {
	list []Header
}

// Set adds or replaces a header.
func (h *Headers) Set(name, val string) {
	for i := range h.list {
		if h.list[i].Name == name {
			h.list[i].Value = val
			return
		}
	}

	h.list = append(h.list, Header{Name: name, Value: val})
}

// Get returns the value of the named header.
func (h Headers) Get(name string) (string, bool) {
	for _, hd := range h.list {
		if hd.Name == name {
			return hd.Value, true
		}
	}

	return "", false
}

// Len returns the number of distinct headers.
func (h Headers) Len() int {
	return len(h.list)
}

// All returns a copy of the headers in first-seen order.
func (h Headers) All() []Header {
	return append([]Header(nil), h.list...)
}

// MarshalJSON encodes the headers as a JSON object in first-seen order.
func (h Headers) MarshalJSON() ([]byte, error) {
	members := make([]value.Member, 0, len(h.list))
	for _, hd := range h.list {
		members = append(members, value.Member{Key: hd.Name, Value: value.String(hd.Value)})
	}

	return value.Object(members...).MarshalJSON()
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order.
func (h *Headers) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*h = Headers{}
		return nil
	}

	v, err := value.DecodeJSON(data)
	if err != nil {
		return err
	}

	if !v.IsObject() {
		return fmt.Errorf("headers: expected object, got %s", v.Kind())
	}

	out := Headers{}

	for _, m := range v.Members() {
		if m.Value.Kind() != value.KindString {
			return fmt.Errorf("headers: value of %q must be a string", m.Key)
		}

		out.Set(m.Key, m.Value.Literal())
	}

	*h = out

	return nil
}

var _ json.Marshaler = Headers{}
