// Package cache provides LRU caching for compiled word matchers and
// assembled documents.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a generic LRU cache interface.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)

	// Put stores a value in the cache.
	Put(key K, value V)

	// Remove removes a value from the cache.
	Remove(key K)

	// Clear removes all entries from the cache.
	Clear()

	// Len returns the number of entries in the cache.
	Len() int

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats contains cache statistics.
type Stats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	Size       int
	MaxSize    int
	TotalBytes int64
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// TTL is the time-to-live for entries (0 = no expiration).
	TTL time.Duration

	// OnEvict is called when an entry is evicted or removed.
	OnEvict func(key, value any)
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize: 100,
	}
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// lruCache is a thread-safe LRU cache implementation.
type lruCache[K comparable, V any] struct {
	mu        sync.Mutex
	config    Config
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRUCache creates a new LRU cache with the given configuration.
func NewLRUCache[K comparable, V any](config Config) Cache[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}

	return &lruCache[K, V]{
		config:    config,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	e := ent.Value.(*entry[K, V])
	if c.config.TTL > 0 && time.Now().After(e.expiresAt) {
		c.removeElement(ent)
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return e.value, true
}

func (c *lruCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		e := ent.Value.(*entry[K, V])
		e.value = value
		if c.config.TTL > 0 {
			e.expiresAt = time.Now().Add(c.config.TTL)
		}
		return
	}

	e := &entry[K, V]{key: key, value: value}
	if c.config.TTL > 0 {
		e.expiresAt = time.Now().Add(c.config.TTL)
	}
	c.entries[key] = c.evictList.PushFront(e)

	if c.config.MaxSize > 0 && c.evictList.Len() > c.config.MaxSize {
		c.removeOldest()
	}
}

func (c *lruCache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.removeElement(ent)
	}
}

func (c *lruCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *lruCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *lruCache[K, V]) removeOldest() {
	if ent := c.evictList.Back(); ent != nil {
		c.removeElement(ent)
		c.stats.Evictions++
	}
}

func (c *lruCache[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	e := ent.Value.(*entry[K, V])
	delete(c.entries, e.key)

	if c.config.OnEvict != nil {
		c.config.OnEvict(e.key, e.value)
	}
}

// GetOrLoad returns the cached value for key, computing and storing it with
// load on a miss. Errors from load are returned and nothing is cached.
// Concurrent misses on the same key may call load more than once.
func GetOrLoad[K comparable, V any](c Cache[K, V], key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

// DocumentCache keeps assembled documents in memory, bounded by entry count
// and total byte size. Keys are document fingerprints.
type DocumentCache struct {
	mu       sync.Mutex
	cache    Cache[string, []byte]
	maxBytes int64
	size     int64
}

// NewDocumentCache creates a document cache. A maxBytes of 0 disables the
// byte limit.
func NewDocumentCache(config Config, maxBytes int64) *DocumentCache {
	d := &DocumentCache{maxBytes: maxBytes}
	userEvict := config.OnEvict
	config.OnEvict = func(key, value any) {
		// Runs with d.mu held.
		if b, ok := value.([]byte); ok {
			d.size -= int64(len(b))
		}
		if userEvict != nil {
			userEvict(key, value)
		}
	}
	d.cache = NewLRUCache[string, []byte](config)
	return d
}

// Get returns a cached document.
func (d *DocumentCache) Get(fingerprint string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.Get(fingerprint)
}

// Put stores a document, evicting least recently used documents until the
// byte limit holds. Documents larger than the limit are not cached.
func (d *DocumentCache) Put(fingerprint string, doc []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := int64(len(doc))
	if d.maxBytes > 0 && n > d.maxBytes {
		return
	}

	d.cache.Remove(fingerprint)
	d.cache.Put(fingerprint, doc)
	d.size += n

	for d.maxBytes > 0 && d.size > d.maxBytes && d.cache.Len() > 1 {
		d.evictOldest()
	}
}

// evictOldest drops the least recently used entry.
func (d *DocumentCache) evictOldest() {
	lru, ok := d.cache.(*lruCache[string, []byte])
	if !ok {
		return
	}
	lru.mu.Lock()
	lru.removeOldest()
	lru.mu.Unlock()
}

// Remove drops a document.
func (d *DocumentCache) Remove(fingerprint string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache.Remove(fingerprint)
}

// Clear drops all documents.
func (d *DocumentCache) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache.Clear()
	d.size = 0
}

// Len returns the number of cached documents.
func (d *DocumentCache) Len() int {
	return d.cache.Len()
}

// Stats returns cache statistics including the total cached bytes.
func (d *DocumentCache) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.cache.Stats()
	s.TotalBytes = d.size
	return s
}
