// Package render prints field lists, documents, suggestions and
// diagnostics as terminal tables. Colour follows the configured mode; in
// auto mode it is used only when the writer is a terminal and NO_COLOR is
// unset.
package render
