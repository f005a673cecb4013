package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes used across the module.
const (
	CodeCompanionDecodeFailed = "companion_decode_failed"
	CodeCompanionReadFailed   = "companion_read_failed"
	CodeCompanionNotObject    = "companion_not_object"
	CodeDanglingMapping       = "dangling_mapping"
	CodeBindingFieldMissing   = "binding_field_missing"
	CodeBindingSourceMissing  = "binding_source_missing"
	CodeBindingInvalid        = "binding_invalid"
	CodeAmbiguousSuggestion   = "ambiguous_suggestion"
)

// Diagnostics holds all diagnostic information from one operation.
type Diagnostics struct {
	Errors   []Diagnostic `json:"errors,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty"`
	Infos    []Diagnostic `json:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Source identifies the companion document this relates to (if any).
	Source string `json:"source,omitempty"`
	// FieldPath identifies which field this relates to (if any).
	FieldPath string `json:"fieldPath,omitempty"`
	// Suggestions are potential fixes or alternatives.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, source, fieldPath string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  SeverityError,
		Code:      code,
		Message:   message,
		Source:    source,
		FieldPath: fieldPath,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, source, fieldPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   message,
		Source:    source,
		FieldPath: fieldPath,
	})
}

// AddWarningWithSuggestions adds a warning listing likely alternatives.
func (d *Diagnostics) AddWarningWithSuggestions(code, message, source, fieldPath string, suggestions []string) {
	d.AddWarning(code, message, source, fieldPath)

	if len(suggestions) > 0 {
		d.Warnings[len(d.Warnings)-1].Suggestions = append([]string(nil), suggestions...)
	}
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, source, fieldPath string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:  SeverityInfo,
		Code:      code,
		Message:   message,
		Source:    source,
		FieldPath: fieldPath,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && len(d.Errors) > 0
}

// IsEmpty reports whether nothing was recorded.
func (d *Diagnostics) IsEmpty() bool {
	return d == nil || len(d.Errors)+len(d.Warnings)+len(d.Infos) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	if d == nil {
		return nil
	}

	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Codes returns the code of every diagnostic, in All order.
func (d *Diagnostics) Codes() []string {
	var out []string
	for _, diag := range d.All() {
		out = append(out, diag.Code)
	}

	return out
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Source != "" {
		prefix = append(prefix, "["+d.Source+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
