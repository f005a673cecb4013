package field

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curl-mapper/internal/value"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want TypeTag
	}{
		{"null", value.Null(), TypeNull},
		{"array", value.Array(value.Number("1")), TypeArray},
		{"empty array", value.Array(), TypeArray},
		{"integer", value.Number("30"), TypeNumber},
		{"float", value.Number("1.5"), TypeNumber},
		{"true", value.Bool(true), TypeBoolean},
		{"false", value.Bool(false), TypeBoolean},
		{"date", value.String("2024-01-01"), TypeDate},
		{"datetime", value.String("2024-01-01T10:00:00Z"), TypeDate},
		{"email", value.String("a@b.co"), TypeEmail},
		{"url", value.String("http://x"), TypeURL},
		{"https url", value.String("https://api.x.com/u"), TypeURL},
		{"plain", value.String("hello"), TypeString},
		{"empty string", value.String(""), TypeString},
		{"numeric text stays string", value.String("30"), TypeString},
		{"boolean text stays string", value.String("true"), TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Infer(tt.v))
		})
	}
}

func TestInferString_Precedence(t *testing.T) {
	tests := []struct {
		input string
		want  TypeTag
	}{
		// A date prefix wins even when the rest looks like an email or URL.
		{"2024-01-01@example.com", TypeDate},
		{"2024-01-01 https://x", TypeDate},
		// Email is anchored at both ends.
		{"jo@example.com", TypeEmail},
		{"jo@example", TypeString},
		{"mailto:jo@example.com", TypeString},
		{"jo@example.c", TypeString},
		// URL only needs the scheme prefix.
		{"https://", TypeURL},
		{"ftp://x", TypeString},
		{"HTTP://X", TypeString},
		// Date needs four-two-two digits at the start.
		{"24-01-01", TypeString},
		{"x2024-01-01", TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, InferString(tt.input))
		})
	}
}

func TestTypeTag_IsValid(t *testing.T) {
	for _, tag := range []TypeTag{TypeString, TypeNumber, TypeBoolean, TypeNull, TypeArray, TypeDate, TypeEmail, TypeURL} {
		assert.True(t, tag.IsValid(), tag)
	}

	assert.False(t, TypeTag("object").IsValid())
	assert.False(t, TypeTag("").IsValid())
}
