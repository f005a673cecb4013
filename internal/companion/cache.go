package companion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
	"curl-mapper/internal/value"
)

// DefaultCacheSize is the number of flattened documents kept by NewCache
// when size is not positive.
const DefaultCacheSize = 256

type cacheEntry struct {
	doc   field.Document
	diags *diagnostic.Diagnostics
}

// Cache memoizes Load by document ID, name, format and content hash.
// Changed content always misses.
type Cache struct {
	entries *lru.Cache[string, cacheEntry]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache returns a Cache holding up to size documents.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}

	return &Cache{entries: entries}, nil
}

// Load behaves like the package-level Load. A nil Cache loads directly.
func (c *Cache) Load(id, name string, content []byte, format value.Format) (field.Document, *diagnostic.Diagnostics) {
	if c == nil {
		return Load(id, name, content, format)
	}

	key := cacheKey(id, name, content, format)

	if e, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return copyEntry(e)
	}

	c.misses.Add(1)

	doc, diags := Load(id, name, content, format)
	c.entries.Add(key, cacheEntry{doc: doc, diags: diags})

	return copyEntry(cacheEntry{doc: doc, diags: diags})
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached document.
func (c *Cache) Purge() {
	c.entries.Purge()
}

func cacheKey(id, name string, content []byte, format value.Format) string {
	sum := sha256.Sum256(content)
	return id + "\x00" + name + "\x00" + string(format) + "\x00" + hex.EncodeToString(sum[:])
}

// copyEntry keeps callers from mutating cached field lists.
func copyEntry(e cacheEntry) (field.Document, *diagnostic.Diagnostics) {
	doc := e.doc
	doc.Fields = doc.Fields.Clone()

	diags := &diagnostic.Diagnostics{}
	diags.Merge(e.diags)

	return doc, diags
}
