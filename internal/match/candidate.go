package match

import (
	"fmt"
	"sort"

	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
)

// Candidate is a possible mapping target for one field.
type Candidate struct {
	SourceID string        `json:"sourceId"`
	Path     string        `json:"path"`
	Type     field.TypeTag `json:"type"`
	Value    string        `json:"value"`

	// Scoring components
	NameScore float64 `json:"nameScore"` // leaf name similarity (0-1)
	PathScore float64 `json:"pathScore"` // rootless path similarity (0-1)

	// Combined score for ranking (higher is better)
	Score float64 `json:"score"`
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every field of every document against fieldPath and
// returns them best first. Ties are broken by source ID, then path.
func RankCandidates(fieldPath string, docs []field.Document) CandidateList {
	leaf := field.Leaf(fieldPath)
	pathNorm := NormalizePath(fieldPath)

	var candidates CandidateList

	for _, doc := range docs {
		for _, f := range doc.Fields {
			targetLeaf := field.Leaf(f.Path)

			// Use the better of the plain and suffix-stripped name scores.
			nameScore := max(
				NormalizedLevenshteinScore(leaf, targetLeaf),
				NormalizedLevenshteinScoreWithSuffixStrip(leaf, targetLeaf),
			)
			pathScore := LevenshteinNormalized(pathNorm, NormalizePath(f.Path))

			candidates = append(candidates, Candidate{
				SourceID:  doc.ID,
				Path:      f.Path,
				Type:      f.Type,
				Value:     f.Value,
				NameScore: nameScore,
				PathScore: pathScore,
				Score:     combinedScore(nameScore, pathScore),
			})
		}
	}

	sort.Stable(candidates)

	return candidates
}

// Suggest ranks candidates for fieldPath and keeps the best limit of them
// (all when limit is not positive). An ambiguous ranking is reported as an
// info diagnostic.
func Suggest(fieldPath string, docs []field.Document, limit int) (CandidateList, *diagnostic.Diagnostics) {
	ranked := RankCandidates(fieldPath, docs)
	diags := &diagnostic.Diagnostics{}

	if ranked.IsAmbiguous(DefaultAmbiguityThreshold) {
		diags.AddInfo(diagnostic.CodeAmbiguousSuggestion,
			fmt.Sprintf("%s:%s and %s:%s score within %.2f",
				ranked[0].SourceID, ranked[0].Path, ranked[1].SourceID, ranked[1].Path, DefaultAmbiguityThreshold),
			"", fieldPath)
	}

	if limit > 0 {
		ranked = ranked.Top(limit)
	}

	return ranked, diags
}

// combinedScore weights the leaf name at 70% and the path at 30%.
func combinedScore(nameScore, pathScore float64) float64 {
	const (
		nameWeight = 0.7
		pathWeight = 0.3
	)

	return nameScore*nameWeight + pathScore*pathWeight
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by source ID and path for determinism.
func (c CandidateList) Less(i, j int) bool {
	// Higher score comes first
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	if c[i].SourceID != c[j].SourceID {
		return c[i].SourceID < c[j].SourceID
	}

	return c[i].Path < c[j].Path
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	diff := c[0].Score - c[1].Score

	return diff < threshold
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// HighConfidence returns the best candidate if it's significantly better than alternatives.
// Returns nil if no clear winner exists.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	if len(c) == 0 {
		return nil
	}

	best := &c[0]

	// Must meet minimum score threshold
	if best.Score < minScore {
		return nil
	}

	// If there's a second candidate, must have sufficient gap
	if len(c) > 1 {
		gap := c[0].Score - c[1].Score
		if gap < minGap {
			return nil
		}
	}

	return best
}

// Confidence thresholds.
const (
	// DefaultMinScore is the minimum score for a high-confidence suggestion.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between top candidates.
	DefaultMinGap = 0.15
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)
