package companion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
	"curl-mapper/internal/match"
	"curl-mapper/internal/value"
)

const (
	// nearestMinScore is the lowest candidate score Nearest reports.
	nearestMinScore = 0.5

	// SuggestionLimit caps the paths offered for a dangling mapping.
	SuggestionLimit = 3
)

// Set is an ordered collection of flattened documents keyed by ID.
// A Set is not safe for concurrent mutation; the Watcher replaces its Set
// wholesale instead of mutating it.
type Set struct {
	docs  []field.Document
	index map[string]int
}

// NewSet returns a Set holding docs in order. A later document with the
// same ID replaces the earlier one.
func NewSet(docs ...field.Document) *Set {
	s := &Set{index: make(map[string]int)}
	for _, d := range docs {
		s.Put(d)
	}

	return s
}

// Put adds doc, or replaces the document with the same ID in place.
func (s *Set) Put(doc field.Document) {
	doc.Fields = doc.Fields.Clone()

	if i, ok := s.index[doc.ID]; ok {
		s.docs[i] = doc
		return
	}

	s.index[doc.ID] = len(s.docs)
	s.docs = append(s.docs, doc)
}

// Get returns the document with the given ID.
func (s *Set) Get(id string) (field.Document, bool) {
	if s == nil {
		return field.Document{}, false
	}

	i, ok := s.index[id]
	if !ok {
		return field.Document{}, false
	}

	return s.docs[i], true
}

// Remove deletes the document with the given ID and reports whether it
// was present.
func (s *Set) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	delete(s.index, id)

	for j := i; j < len(s.docs); j++ {
		s.index[s.docs[j].ID] = j
	}

	return true
}

// Documents returns the documents in insertion order.
func (s *Set) Documents() []field.Document {
	if s == nil {
		return nil
	}

	return append([]field.Document(nil), s.docs...)
}

// IDs returns the document IDs in insertion order.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}

	ids := make([]string, 0, len(s.docs))
	for _, d := range s.docs {
		ids = append(ids, d.ID)
	}

	return ids
}

// Len returns the number of documents.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.docs)
}

// Lookup returns the field at path in the document sourceID.
func (s *Set) Lookup(sourceID, path string) (field.Field, bool) {
	doc, ok := s.Get(sourceID)
	if !ok {
		return field.Field{}, false
	}

	return doc.Fields.Find(path)
}

// Nearest returns up to n paths of the document sourceID that look like
// path, best first. Weak matches are left out.
func (s *Set) Nearest(sourceID, path string, n int) []string {
	doc, ok := s.Get(sourceID)
	if !ok || n <= 0 {
		return nil
	}

	var out []string

	for _, c := range match.RankCandidates(path, []field.Document{doc}).AboveThreshold(nearestMinScore).Top(n) {
		out = append(out, c.Path)
	}

	return out
}

// LoadDir loads every companion document file directly inside dir, in name
// order. Documents that cannot be read or decoded are kept empty and
// reported in the returned diagnostics. Only a failure to list dir is
// returned as an error. cache may be nil.
func LoadDir(dir string, cache *Cache) (*Set, *diagnostic.Diagnostics, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read companion directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsDocumentFile(e.Name()) {
			continue
		}

		names = append(names, e.Name())
	}

	sort.Strings(names)

	set := NewSet()
	diags := &diagnostic.Diagnostics{}

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			diags.AddError(diagnostic.CodeCompanionReadFailed,
				fmt.Sprintf("failed to read document: %v", err), name, "")
			set.Put(field.Document{ID: name, Name: name})

			continue
		}

		doc, d := cache.Load(name, name, content, value.FormatFromName(name))
		set.Put(doc)
		diags.Merge(d)
	}

	return set, diags, nil
}
