package client

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	body      []byte
	fetchedAt time.Time
}

// Cache holds raw response bodies keyed by request path plus canonical
// query. Entries never expire on their own; freshness is judged against the
// TTL at read time and stale entries stay usable until invalidated or
// replaced.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]cacheEntry
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
		m:   make(map[string]cacheEntry),
	}
}

// CacheKey canonicalizes the query so that logically identical requests
// share one entry regardless of parameter order.
func CacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('?')
	for i, k := range keys {
		vs := append([]string(nil), query[k]...)
		sort.Strings(vs)
		for j, v := range vs {
			if i > 0 || j > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// get returns the entry and whether it is still fresh.
func (c *Cache) get(key string) (body []byte, fresh, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false, false
	}
	return e.body, time.Since(e.fetchedAt) < c.ttl, true
}

func (c *Cache) set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = cacheEntry{body: body, fetchedAt: time.Now()}
}

// InvalidatePrefix drops every entry whose key starts with prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
