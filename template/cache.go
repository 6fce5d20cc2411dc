package template

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
)

// ContentKey returns the cache key used for a template identified by its text.
func ContentKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return "tmpl_" + hex.EncodeToString(sum[:])
}

// Cache holds compiled templates keyed by name or content hash.
// Entries are never evicted; Clear drops all of them at once.
// All methods are safe for concurrent use.
type Cache struct {
	engine    *Engine
	templates map[string]*Compiled
	mu        sync.RWMutex
}

// NewCache creates an empty cache compiling with engine. A nil engine
// uses the package default.
func NewCache(engine *Engine) *Cache {
	if engine == nil {
		engine = defaultEngine
	}
	return &Cache{
		engine:    engine,
		templates: make(map[string]*Compiled),
	}
}

// Compile returns the compiled form of source, keyed by ContentKey(source).
func (c *Cache) Compile(source string) *Compiled {
	return c.Named(ContentKey(source), source)
}

// Named returns the template cached under name, compiling source on first
// use. Later calls with a different source return the first compilation until
// the cache is cleared.
func (c *Cache) Named(name, source string) *Compiled {
	c.mu.RLock()
	compiled, ok := c.templates[name]
	c.mu.RUnlock()
	if ok {
		return compiled
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if compiled, ok := c.templates[name]; ok {
		return compiled
	}
	compiled = c.engine.Compile(source)
	c.templates[name] = compiled
	return compiled
}

// Get returns the template cached under key.
func (c *Cache) Get(key string) (*Compiled, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	compiled, ok := c.templates[key]
	return compiled, ok
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.templates))
	for k := range c.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear removes every cached template.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = make(map[string]*Compiled)
}
