// Package extract turns a parsed curl request into the field list used for
// templating and mapping.
package extract

import (
	"curl-mapper/internal/curl"
	"curl-mapper/internal/field"
)

// Fields returns one "header.<Name>" field per header, in header order,
// followed by the flattened body under "body". A body that is not an object
// (an undecodable string, an array or a scalar) contributes no fields.
func Fields(req *curl.Request) field.List {
	if req == nil {
		return nil
	}

	var out field.List

	for _, h := range req.Headers.All() {
		out = append(out, field.Field{
			Path:  field.JoinPath(field.PrefixHeader, h.Name),
			Value: h.Value,
			Type:  field.TypeString,
		})
	}

	if req.Body != nil {
		out = append(out, field.Flatten(*req.Body, field.PrefixBody)...)
	}

	return out
}

// Command parses text and extracts its fields. On a parse error no
// extraction is attempted.
func Command(text string) (*curl.Request, field.List, error) {
	req, err := curl.Parse(text)
	if err != nil {
		return nil, nil, err
	}

	return req, Fields(req), nil
}
