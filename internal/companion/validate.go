package companion

import (
	"fmt"

	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
)

// ValidateMappings reports every complete mapping in list whose source
// document or target path is missing from set. A missing target carries
// the closest existing paths as suggestions. Type differences between a
// field and its target are never reported.
func ValidateMappings(list field.List, set *Set) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	for _, f := range list {
		if !f.Mapping.IsComplete() {
			continue
		}

		src, tgt := f.Mapping.SourceID, f.Mapping.TargetPath

		if _, ok := set.Get(src); !ok {
			diags.AddWarning(diagnostic.CodeDanglingMapping,
				fmt.Sprintf("source document %q is not loaded", src), src, f.Path)

			continue
		}

		if _, ok := set.Lookup(src, tgt); !ok {
			diags.AddWarningWithSuggestions(diagnostic.CodeDanglingMapping,
				fmt.Sprintf("target path %q no longer exists", tgt), src, f.Path,
				set.Nearest(src, tgt, SuggestionLimit))
		}
	}

	return diags
}
