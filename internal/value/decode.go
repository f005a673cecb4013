package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names the text encoding of a structured document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by Decode for an unsupported format.
var ErrUnknownFormat = errors.New("unknown document format")

// ParseFormat maps a user-supplied format name to a Format.
// The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromName picks a format from a file name extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode decodes data according to format.
func Decode(data []byte, format Format) (Value, error) {
	switch format {
	case FormatJSON, "":
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DecodeJSON decodes exactly one JSON value from data.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("decode json: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("decode json: unexpected data after top-level value")
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}

		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	obj := Value{kind: KindObject}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}

		val, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}

		obj.members = setMember(obj.members, key, val)
	}

	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return obj, nil
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	arr := Value{kind: KindArray, items: []Value{}}

	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return Value{}, err
		}

		arr.items = append(arr.items, val)
	}

	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return arr, nil
}

// DecodeYAML decodes a single YAML document. An empty document decodes to Null.
func DecodeYAML(data []byte) (Value, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("decode yaml: %w", err)
	}

	if doc.Kind == 0 {
		return Null(), nil
	}

	v, err := fromYAMLNode(&doc)
	if err != nil {
		return Value{}, fmt.Errorf("decode yaml: %w", err)
	}

	return v, nil
}

func fromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}

		return fromYAMLNode(node.Content[0])

	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, fmt.Errorf("line %d: dangling alias", node.Line)
		}

		return fromYAMLNode(node.Alias)

	case yaml.MappingNode:
		obj := Value{kind: KindObject}

		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value

			val, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}

			obj.members = setMember(obj.members, key, val)
		}

		return obj, nil

	case yaml.SequenceNode:
		arr := Value{kind: KindArray, items: make([]Value, 0, len(node.Content))}

		for _, item := range node.Content {
			val, err := fromYAMLNode(item)
			if err != nil {
				return Value{}, err
			}

			arr.items = append(arr.items, val)
		}

		return arr, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(node)

	default:
		return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %v", node.Line, node.Kind)
	}
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		// yaml.v3 resolves only true/false spellings to !!bool; an explicit
		// tag on anything else is kept as text.
		if b, err := strconv.ParseBool(strings.ToLower(node.Value)); err == nil {
			return Bool(b), nil
		}

		return String(node.Value), nil
	case "!!int", "!!float":
		return Number(node.Value), nil
	default:
		return String(node.Value), nil
	}
}
