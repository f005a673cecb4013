// Package diagnostic provides structured errors, warnings and infos for the
// non-fatal problems found while loading companion documents and applying
// mappings.
//
// Key capabilities:
//   - Companion document decode failures
//   - Dangling mapping reports (source document or target path gone)
//   - Scenario bindings that no longer match a field
package diagnostic
