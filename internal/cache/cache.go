// Package cache implements the TTL fetch cache the monitor reads
// through. An entry is fresh while its age is below the TTL the caller
// passed; a stale or missing entry triggers the fetch function and the
// result replaces whatever was stored. Errors are never cached.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultMaxEntries bounds the cache when no size is given.
const DefaultMaxEntries = 256

type entry struct {
	key       string
	value     any
	fetchedAt time.Time
}

// FetchFunc loads the value for a key on miss.
type FetchFunc func(ctx context.Context) (any, error)

// Cache is a bounded in-memory fetch cache with LRU eviction. Each key
// holds a single timestamp; concurrent refreshes resolve last-write-
// wins on both value and timestamp.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
	max     int
	now     func() time.Time
	group   singleflight.Group
}

// New creates a cache bounded to max entries (DefaultMaxEntries if
// max <= 0).
func New(max int) *Cache {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Cache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		max:     max,
		now:     time.Now,
	}
}

// Fetch returns the cached value for key if it is younger than ttl,
// otherwise calls fn and stores the result. The freshness test always
// runs against the one stored timestamp, whatever TTL previous callers
// used. fn runs outside the cache lock, and concurrent misses on the
// same key share a single in-flight call.
func (c *Cache) Fetch(ctx context.Context, key string, ttl time.Duration, fn FetchFunc) (any, error) {
	if v, ok := c.get(key, ttl); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A caller that arrives just after the flight completed
		// finds the entry the leader stored.
		if v, ok := c.get(key, ttl); ok {
			return v, nil
		}
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, v)
		return v, nil
	})
	return v, err
}

// Clear wipes all entries. Used by the manual refresh action.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) get(key string, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().Sub(e.fetchedAt) >= ttl {
		return nil, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

func (c *Cache) put(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		e.value = v
		e.fetchedAt = c.now()
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&entry{key: key, value: v, fetchedAt: c.now()})
	for len(c.entries) > c.max {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}
