package value

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON-like value. The zero Value is Null.
type Value struct {
	kind    Kind
	b       bool
	s       string
	items   []Value
	members []Member
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number wraps a numeric literal. The literal is kept verbatim.
func Number(literal string) Value {
	return Value{kind: KindNumber, s: literal}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array builds an array from items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value{}, items...)}
}

// Object builds an object from members. Duplicate keys keep the position of
// the first occurrence and the value of the last.
func Object(members ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		v.members = setMember(v.members, m.Key, m.Value)
	}

	return v
}

func setMember(members []Member, key string, val Value) []Member {
	for i := range members {
		if members[i].Key == key {
			members[i].Value = val
			return members
		}
	}

	return append(members, Member{Key: key, Value: val})
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsArray reports whether v is an array.
func (v Value) IsArray() bool { return v.kind == KindArray }

// BoolValue returns the boolean payload; false for other kinds.
func (v Value) BoolValue() bool { return v.kind == KindBool && v.b }

// Literal returns the string payload of a String or the literal of a Number.
func (v Value) Literal() string {
	if v.kind == KindString || v.kind == KindNumber {
		return v.s
	}

	return ""
}

// Items returns the array elements. The slice must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}

	return v.items
}

// Members returns the object members in order. The slice must not be modified.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}

	return v.members
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get returns the member value for key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}

	return Value{}, false
}

// Text returns the textual form of v, as a browser's String(v) would print it,
// with one difference: objects render as compact JSON instead of
// "[object Object]".
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}

		return "false"
	case KindNumber, KindString:
		return v.s
	case KindArray:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			if item.kind == KindNull {
				continue
			}

			parts[i] = item.Text()
		}

		return strings.Join(parts, ",")
	case KindObject:
		b, err := v.MarshalJSON()
		if err != nil {
			return ""
		}

		return string(b)
	default:
		return ""
	}
}

// MarshalJSON encodes v as JSON, keeping object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if !json.Valid([]byte(v.s)) {
			// YAML literals such as .inf or 0x1F are not JSON numbers.
			return writeJSONString(buf, v.s)
		}

		buf.WriteString(v.s)
	case KindString:
		return writeJSONString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')

		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeJSONString(buf, m.Key); err != nil {
				return err
			}

			buf.WriteByte(':')

			if err := m.Value.writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	}

	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	// Encoder.Encode appends a newline.
	buf.Truncate(buf.Len() - 1)

	return nil
}

// UnmarshalJSON decodes JSON into v, keeping object member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(data)
	if err != nil {
		return err
	}

	*v = decoded

	return nil
}
