package scenario

import (
	"fmt"

	"curl-mapper/internal/companion"
	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
)

// Apply binds the scenario's mappings onto a copy of fields, typically a
// fresh extraction of the same command. Bound fields become editable and
// keep their freshly extracted values. A binding whose field is gone, or
// that lacks a source or target, is reported as a warning and skipped.
func Apply(s *Scenario, fields field.List) (field.List, *diagnostic.Diagnostics) {
	out := fields.Clone()
	diags := &diagnostic.Diagnostics{}

	for _, b := range s.Bindings {
		if b.Source == "" || b.Target == "" {
			diags.AddWarning(diagnostic.CodeBindingInvalid,
				"binding needs both a source document and a target path; skipped", b.Source, b.Field)

			continue
		}

		i := out.Index(b.Field)
		if i < 0 {
			diags.AddWarning(diagnostic.CodeBindingFieldMissing,
				fmt.Sprintf("field is not present in the command; binding to %s:%s skipped", b.Source, b.Target),
				b.Source, b.Field)

			continue
		}

		err := out.SetEditable(i, true)
		if err == nil {
			err = out.Bind(i, b.Source, b.Target)
		}

		if err != nil {
			diags.AddError(diagnostic.CodeBindingInvalid, err.Error(), b.Source, b.Field)
		}
	}

	return out, diags
}

// Validate checks every binding against the loaded companion documents.
func Validate(s *Scenario, set *companion.Set) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	for _, b := range s.Bindings {
		if b.Source == "" || b.Target == "" {
			diags.AddWarning(diagnostic.CodeBindingInvalid,
				"binding needs both a source document and a target path", b.Source, b.Field)

			continue
		}

		if _, ok := set.Get(b.Source); !ok {
			diags.AddWarning(diagnostic.CodeBindingSourceMissing,
				fmt.Sprintf("source document %q is not loaded", b.Source), b.Source, b.Field)

			continue
		}

		if _, ok := set.Lookup(b.Source, b.Target); !ok {
			diags.AddWarningWithSuggestions(diagnostic.CodeDanglingMapping,
				fmt.Sprintf("target path %q no longer exists", b.Target), b.Source, b.Field,
				set.Nearest(b.Source, b.Target, companion.SuggestionLimit))
		}
	}

	return diags
}
