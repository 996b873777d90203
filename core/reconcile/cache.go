package reconcile

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DocumentCache holds extracted documents keyed by kind, name and content digest,
// so repeated runs over unchanged sources skip extraction.
type DocumentCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	sf      singleflight.Group
	ttl     time.Duration
}

type cacheEntry struct {
	doc   *Document
	built time.Time
}

// NewDocumentCache creates a cache whose entries live for ttl.
// A zero ttl disables caching: every lookup extracts again.
func NewDocumentCache(ttl time.Duration) *DocumentCache {
	return &DocumentCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

func (c *DocumentCache) expired(e *cacheEntry) bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(e.built) > c.ttl
}

// GetOrExtract returns the cached document for the content, or extracts it.
// Concurrent lookups of the same key share a single extraction.
// Extraction errors are never cached.
func (c *DocumentCache) GetOrExtract(ex Extractor, name string, content []byte) (*Document, error) {
	key := DocumentKey(ex.Kind(), name, string(content)).String()

	// Fast path: fresh entry
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !c.expired(e) {
		return e.doc, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !c.expired(e) {
			return e.doc, nil
		}

		doc, err := ex.Extract(name, content)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &cacheEntry{doc: doc, built: time.Now()}
		c.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Document), nil
}

// Len returns the number of cached entries, fresh or not.
func (c *DocumentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops expired entries.
func (c *DocumentCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
		}
	}
}
