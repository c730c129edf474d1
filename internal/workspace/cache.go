package workspace

import (
	"fmt"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// IncludeEntry is a parsed include file. Entries are immutable; invalidation
// replaces the whole entry.
type IncludeEntry struct {
	Path string
	Text string
	Tree syntax.Tree
}

// IncludeCache caches parsed include files keyed by resolved absolute path,
// so a shared include is read and parsed once per generation instead of once
// per document. Evicted and replaced entries have their trees closed.
type IncludeCache struct {
	cache otter.Cache[string, IncludeEntry]
}

// NewIncludeCache builds a cache holding up to capacity parsed includes.
func NewIncludeCache(capacity int) (*IncludeCache, error) {
	cache, err := otter.MustBuilder[string, IncludeEntry](capacity).
		DeletionListener(func(key string, entry IncludeEntry, cause otter.DeletionCause) {
			if entry.Tree != nil {
				entry.Tree.Close()
			}
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building include cache: %w", err)
	}
	return &IncludeCache{cache: cache}, nil
}

// Get returns the cached entry for a resolved path.
func (c *IncludeCache) Get(path string) (IncludeEntry, bool) {
	return c.cache.Get(path)
}

// Put stores a parsed include.
func (c *IncludeCache) Put(entry IncludeEntry) {
	c.cache.Set(entry.Path, entry)
}

// Invalidate drops the entry for a path. Called when an include file is
// saved so the next walk re-reads it.
func (c *IncludeCache) Invalidate(path string) {
	c.cache.Delete(path)
}

// Close releases the cache and every cached tree.
func (c *IncludeCache) Close() {
	c.cache.Clear()
	c.cache.Close()
}
