package diagnose

import (
	"slices"
	"sync"

	"umlsense/internal/diag"
)

// Collection stores the current diagnostics per document URI. Set replaces
// the whole entry at once, so readers always see a complete snapshot.
type Collection struct {
	mu    sync.RWMutex
	items map[string][]diag.Diagnostic
}

func NewCollection() *Collection {
	return &Collection{items: make(map[string][]diag.Diagnostic)}
}

// Set replaces the diagnostics of uri.
func (c *Collection) Set(uri string, diags []diag.Diagnostic) {
	snapshot := slices.Clone(diags)
	c.mu.Lock()
	c.items[uri] = snapshot
	c.mu.Unlock()
}

// Get returns a copy of the diagnostics of uri.
func (c *Collection) Get(uri string) ([]diag.Diagnostic, bool) {
	c.mu.RLock()
	d, ok := c.items[uri]
	c.mu.RUnlock()
	return slices.Clone(d), ok
}

// Delete drops uri entirely.
func (c *Collection) Delete(uri string) {
	c.mu.Lock()
	delete(c.items, uri)
	c.mu.Unlock()
}

// URIs returns the stored document URIs, sorted.
func (c *Collection) URIs() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.items))
	for uri := range c.items {
		out = append(out, uri)
	}
	c.mu.RUnlock()
	slices.Sort(out)
	return out
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
