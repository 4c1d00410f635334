package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/sitemap"
)

// Catalog sources.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceRedis   = "redis"
)

// MemoryIndex holds the catalog currently served. Catalogs are immutable;
// a reload swaps the pointer.
type MemoryIndex struct {
	mu         sync.RWMutex
	catalog    *sitemap.Catalog
	source     string
	lastReload time.Time // zero while the built-in catalog is served
}

// NewMemoryIndex creates an index serving the built-in catalog
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		catalog: sitemap.DefaultCatalog(),
		source:  SourceBuiltin,
	}
}

// Update replaces the served catalog. A nil catalog is ignored.
func (idx *MemoryIndex) Update(catalog *sitemap.Catalog, source string) {
	if catalog == nil {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.catalog = catalog
	idx.source = source
	idx.lastReload = time.Now()
}

// Catalog returns the served catalog
func (idx *MemoryIndex) Catalog() *sitemap.Catalog {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.catalog
}

// Select returns the variant for origin from the served catalog
func (idx *MemoryIndex) Select(origin string) sitemap.Variant {
	return idx.Catalog().Select(origin)
}

// Count returns the number of variants served
func (idx *MemoryIndex) Count() int {
	return idx.Catalog().Len()
}

// Source returns where the served catalog came from
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last catalog update
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
