package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/eltrufas/osuparse/internal/beatmap"
	"github.com/eltrufas/osuparse/internal/parser"
	"github.com/eltrufas/osuparse/internal/textutil"

	"github.com/rs/zerolog/log"
)

// CanonicalSource returns the stored canonical text of a beatmap by content
// hash. ok is false when the hash is unknown.
type CanonicalSource interface {
	Canonical(ctx context.Context, hash string) (text string, ok bool, err error)
}

// ParseCache memoises parsed beatmaps by content hash. Cached beatmaps are
// shared between callers and must not be modified.
type ParseCache struct {
	source CanonicalSource
	mu     sync.RWMutex
	memory map[string]*beatmap.Beatmap
	hits   int
	misses int
}

// NewParseCache creates a cache. source may be nil.
func NewParseCache(source CanonicalSource) *ParseCache {
	return &ParseCache{
		source: source,
		memory: make(map[string]*beatmap.Beatmap),
	}
}

// Get looks a hash up in memory, then in the canonical source.
func (c *ParseCache) Get(ctx context.Context, hash string) (*beatmap.Beatmap, bool) {
	c.mu.RLock()
	b, ok := c.memory[hash]
	c.mu.RUnlock()
	if ok {
		c.count(true)
		return b, true
	}
	c.count(false)

	if c.source == nil {
		return nil, false
	}
	text, ok, err := c.source.Canonical(ctx, hash)
	if err != nil {
		log.Warn().Err(err).Str("hash", hash).Msg("Canonical lookup failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	b, err = parser.Parse(text)
	if err != nil {
		log.Warn().Err(err).Str("hash", hash).Msg("Stored canonical text no longer parses")
		return nil, false
	}

	c.Put(hash, b)
	return b, true
}

// Put stores a parsed beatmap under hash.
func (c *ParseCache) Put(hash string, b *beatmap.Beatmap) {
	c.mu.Lock()
	c.memory[hash] = b
	c.mu.Unlock()
}

// Parse returns the beatmap for data, parsing it only when its hash is not
// cached yet. The content hash is returned alongside.
func (c *ParseCache) Parse(ctx context.Context, data []byte) (*beatmap.Beatmap, string, error) {
	hash := textutil.Hash(data)
	if b, ok := c.Get(ctx, hash); ok {
		return b, hash, nil
	}
	b, err := parser.ParseBytes(data)
	if err != nil {
		return nil, hash, fmt.Errorf("cache parse: %w", err)
	}
	c.Put(hash, b)
	return b, hash, nil
}

// Len returns the number of beatmaps held in memory.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

// Stats returns memory hit and miss counts.
func (c *ParseCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *ParseCache) count(hit bool) {
	c.mu.Lock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()
}
