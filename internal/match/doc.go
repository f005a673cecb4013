// Package match suggests mapping targets for a field by comparing its name
// with the fields of companion documents.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks target paths across documents
//
// Suggestions are advisory only. Nothing in this package sets a mapping.
package match
