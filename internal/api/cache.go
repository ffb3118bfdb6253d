package api

import (
	"os"
	"strconv"
	"sync"
)

// AssetCache is a thread-safe LRU cache for seal and certificate blobs
// loaded from storage. Issued assets never change, so entries are only
// evicted for capacity.
type AssetCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	data []byte
}

// NewAssetCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 64.
func NewAssetCache(maxSize int) *AssetCache {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &AssetCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewAssetCacheFromEnv creates a cache with size from ASSET_CACHE_SIZE env var.
func NewAssetCacheFromEnv() *AssetCache {
	size := 64
	if v := os.Getenv("ASSET_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewAssetCache(size)
}

// Get retrieves a blob from the cache, or nil if not found.
func (c *AssetCache) Get(ref string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[ref]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(ref)
	return entry.data
}

// Put adds a blob to the cache, evicting the oldest if full.
func (c *AssetCache) Put(ref string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[ref]; ok {
		c.entries[ref] = &cacheEntry{data: data}
		c.moveToEnd(ref)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[ref] = &cacheEntry{data: data}
	c.order = append(c.order, ref)
}

func (c *AssetCache) moveToEnd(ref string) {
	for i, k := range c.order {
		if k == ref {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, ref)
			return
		}
	}
}
