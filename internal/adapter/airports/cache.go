package airports

import (
	"context"
	"fmt"
	"sync"

	"github.com/aeroops/diversion-engine/internal/domain"
)

// CachedSource wraps an AirportSource with an in-memory LRU cache. Positions
// are quantized to roughly six nautical miles so nearby queries for the same
// stretch of airspace share an entry.
type CachedSource struct {
	inner domain.AirportSource
	cache *lruCache
}

// NewCachedSource creates a cache decorator around an airport source.
func NewCachedSource(inner domain.AirportSource, maxEntries int) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedSource) NearbyCandidates(ctx context.Context, pos domain.Position, radiusNm float64) ([]domain.DiversionCandidate, error) {
	key := fmt.Sprintf("%.1f,%.1f|%.0f", pos.Lat, pos.Lon, radiusNm)
	if cands, ok := c.cache.get(key); ok {
		return cands, nil
	}
	cands, err := c.inner.NearbyCandidates(ctx, pos, radiusNm)
	if err != nil {
		return cands, err
	}
	// Only cache non-empty results so transient "nothing in range" responses
	// can be retried.
	if len(cands) > 0 {
		c.cache.put(key, cands)
	}
	return cands, nil
}

// lruCache is a simple thread-safe LRU cache for candidate lists.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []domain.DiversionCandidate
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.DiversionCandidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.DiversionCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
