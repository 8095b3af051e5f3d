package source

import (
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cached wraps a Source with a TTL cache keyed by directory. A refresh
// re-lists every expanded directory and the status bar asks for the root
// again, so within one cycle each directory is read once. Concurrent
// listings of the same directory share a single read.
type Cached struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// maxCacheEntries caps the cache. When exceeded, expired entries are
// evicted and, failing that, the whole cache is flushed.
const maxCacheEntries = 256

type cacheEntry struct {
	entries []Entry
	err     error
	expiry  time.Time
}

// Compile-time check.
var _ Source = (*Cached)(nil)

// NewCached wraps inner with a TTL cache. A non-positive ttl disables caching.
func NewCached(inner Source, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cacheEntry, 16),
	}
}

// Invalidate clears all cached listings.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 16)
	c.mu.Unlock()
}

// Forget drops the cached listing of one directory.
func (c *Cached) Forget(dir string) {
	c.mu.Lock()
	delete(c.cache, dir)
	c.mu.Unlock()
}

// List returns dir's entries from the cache when fresh. Callers may modify
// the returned slice.
func (c *Cached) List(ctx context.Context, dir string) ([]Entry, error) {
	if entries, ok, err := c.get(dir); ok {
		return slices.Clone(entries), err
	}
	v, err, _ := c.group.Do(dir, func() (interface{}, error) {
		entries, err := c.inner.List(ctx, dir)
		// Cancellation belongs to this caller, not the directory.
		if ctx.Err() == nil {
			c.set(dir, entries, err)
		}
		return entries, err
	})
	entries, _ := v.([]Entry)
	return slices.Clone(entries), err
}

func (c *Cached) get(dir string) ([]Entry, bool, error) {
	if c.ttl <= 0 {
		return nil, false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[dir]
	if !found || c.now().After(e.expiry) {
		return nil, false, nil
	}
	return e.entries, true, e.err
}

func (c *Cached) set(dir string, entries []Entry, err error) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cache) >= maxCacheEntries {
		now := c.now()
		for k, e := range c.cache {
			if now.After(e.expiry) {
				delete(c.cache, k)
			}
		}
		if len(c.cache) >= maxCacheEntries {
			c.cache = make(map[string]cacheEntry, 16)
		}
	}
	c.cache[dir] = cacheEntry{entries: entries, err: err, expiry: c.now().Add(c.ttl)}
}
