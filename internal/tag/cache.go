// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tag

import (
	"sync"

	"github.com/morganforge/ownertag/internal/permission"
)

// Cache memoizes classifications for one snapshot version at a time. A lookup
// or store under a new version drops everything cached for the old one.
type Cache struct {
	mu      sync.Mutex
	version string
	entries map[cacheKey]permission.Classification
	hits    uint64
	misses  uint64
}

type cacheKey struct {
	guildID string
	userID  string
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Version string
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]permission.Classification)}
}

// Get returns the cached classification of userID in guildID.
func (c *Cache) Get(version, guildID, userID string) (permission.Classification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollover(version)
	v, ok := c.entries[cacheKey{guildID, userID}]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Put stores a classification.
func (c *Cache) Put(version, guildID, userID string, v permission.Classification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rollover(version)
	c.entries[cacheKey{guildID, userID}] = v
}

// Stats returns a copy of the counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Version: c.version, Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}

func (c *Cache) rollover(version string) {
	if version == c.version {
		return
	}
	c.version = version
	c.entries = make(map[cacheKey]permission.Classification)
}
