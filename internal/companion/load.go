package companion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
	"curl-mapper/internal/value"
)

// Load decodes content and flattens it with an empty prefix. A decode
// failure or a non-object root yields an empty document plus a diagnostic;
// Load itself never fails.
func Load(id, name string, content []byte, format value.Format) (field.Document, *diagnostic.Diagnostics) {
	doc := field.Document{ID: id, Name: name}
	diags := &diagnostic.Diagnostics{}

	v, err := value.Decode(content, format)
	if err != nil {
		diags.AddError(diagnostic.CodeCompanionDecodeFailed,
			fmt.Sprintf("failed to decode %s document: %v", format, err), id, "")

		return doc, diags
	}

	if !v.IsObject() {
		diags.AddWarning(diagnostic.CodeCompanionNotObject,
			fmt.Sprintf("document root is %s, not an object", v.Kind()), id, "")

		return doc, diags
	}

	doc.Fields = field.Flatten(v, "")

	return doc, diags
}

// LoadFile reads path and loads it. The document ID and name are the file's
// base name and the format follows its extension. Only a read failure is
// returned as an error.
func LoadFile(path string) (field.Document, *diagnostic.Diagnostics, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return field.Document{}, nil, fmt.Errorf("failed to read companion document: %w", err)
	}

	base := filepath.Base(path)
	doc, diags := Load(base, base, content, value.FormatFromName(base))

	return doc, diags, nil
}

// IsDocumentFile reports whether name has a companion document extension.
func IsDocumentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
