// Package querycache is the request cache between pages and the data server.
// Entries are keyed by a parameter tuple whose first element names the
// resource; invalidating that resource drops every entry under it.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached fetch, e.g. Key{"employees", "page=2", "limit=10"}.
// Key[0] is the invalidation prefix.
type Key []string

func (k Key) String() string { return strings.Join(k, "|") }

func (k Key) prefix() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

type entry struct {
	value   any
	expires time.Time
}

// Cache holds fetched values for a staleness window and deduplicates
// concurrent identical fetches. Cached values are shared between callers
// and must be treated as read-only.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	gens    map[string]uint64
	group   singleflight.Group
	now     func() time.Time
}

// New creates a cache. A non-positive ttl disables storage while keeping
// deduplication of in-flight fetches.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: map[string]entry{},
		gens:    map[string]uint64{},
		now:     time.Now,
	}
}

// Fetch returns the cached value for key or calls fetch once for all
// concurrent callers. A fetch that started before an Invalidate of its
// prefix is returned to its callers but never stored.
//
// The shared fetch runs without the caller's cancellation so one caller
// giving up does not fail the others; each caller still returns as soon as
// its own ctx is done.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	k := key.String()

	c.mu.Lock()
	if e, ok := c.entries[k]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		v, _ := e.value.(T)
		return v, nil
	}
	gen := c.gens[key.prefix()]
	c.mu.Unlock()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%s#%d", k, gen), func() (any, error) {
		return fetch(shared)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		var zero T
		return zero, res.Err
	}
	v := res.Val

	if c.ttl > 0 {
		c.mu.Lock()
		if c.gens[key.prefix()] == gen {
			c.entries[k] = entry{value: v, expires: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
	}

	out, _ := v.(T)
	return out, nil
}

// Invalidate drops every entry under each prefix and fences off fetches
// already in flight for them.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range prefixes {
		c.gens[p]++
		for k := range c.entries {
			if k == p || strings.HasPrefix(k, p+"|") {
				delete(c.entries, k)
			}
		}
	}
}

// Sweep removes expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
