package analyze

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

type cacheEntry struct {
	Hash         string
	Report       Report
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache keeps the last report of every graph file, keyed by path and
// invalidated when the file content changes. It lives in memory only.
type Cache struct {
	entries map[string]cacheEntry
	mutex   sync.Mutex
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached report for path if it was computed from data.
func (c *Cache) Get(path string, data []byte) (Report, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[path]
	if !exists {
		return Report{}, false
	}
	if entry.Hash != contentHash(data) {
		delete(c.entries, path)
		return Report{}, false
	}

	entry.LastAccessed = time.Now()
	c.entries[path] = entry
	return entry.Report, true
}

// Set stores the report computed from data for path.
func (c *Cache) Set(path string, data []byte, report Report) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[path] = cacheEntry{
		Hash:         contentHash(data),
		Report:       report,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

// Len returns the number of cached reports.
func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}
