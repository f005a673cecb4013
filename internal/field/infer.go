package field

import (
	"regexp"

	"curl-mapper/internal/value"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	urlPattern   = regexp.MustCompile(`^https?://`)
)

// Infer classifies a scalar leaf value. First match wins:
// null, array, number, boolean, then the string checks of InferString.
func Infer(v value.Value) TypeTag {
	switch v.Kind() {
	case value.KindNull:
		return TypeNull
	case value.KindArray:
		return TypeArray
	case value.KindNumber:
		return TypeNumber
	case value.KindBool:
		return TypeBoolean
	case value.KindString:
		return InferString(v.Literal())
	default:
		return TypeString
	}
}

// InferString classifies text: an ISO date prefix beats an email, which beats
// an http(s) URL prefix. Everything else is a plain string.
func InferString(s string) TypeTag {
	switch {
	case datePattern.MatchString(s):
		return TypeDate
	case emailPattern.MatchString(s):
		return TypeEmail
	case urlPattern.MatchString(s):
		return TypeURL
	default:
		return TypeString
	}
}
