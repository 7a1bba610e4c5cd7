package cache

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/poly1603/ldesign-validator/pkg/logger"
)

type entry[V any] struct {
	key      string
	value    V
	expireAt time.Time // zero => no TTL
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Size    int
	MaxSize int
	// HitRate is a percentage in the range [0, 100].
	HitRate float64
}

// Cache is a thread-safe, bounded key/value store with optional expiry.
// When the cache is full the oldest inserted entry is evicted, regardless of
// how recently it was read.
type Cache[V any] struct {
	mu      sync.Mutex
	opts    *options
	enabled bool
	items   map[string]*list.Element
	order   *list.List
	hits    uint64
	misses  uint64
	onEvict func(key string, value V)

	stop      chan struct{}
	done      chan struct{}
	destroyed bool
}

// New creates a cache. With WithAutoCleanup a background goroutine is
// started; call Destroy to stop it.
func New[V any](opts ...Option) *Cache[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Cache[V]{
		opts:    o,
		enabled: o.enabled,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}

	if o.autoCleanup {
		c.stop = make(chan struct{})
		c.done = make(chan struct{})
		go c.sweep(o.cleanupInterval)
	}

	return c
}

// NewFromConfig creates a cache from cfg. Extra options are applied after cfg.
func NewFromConfig[V any](cfg Config, opts ...Option) *Cache[V] {
	return New[V](append(cfg.Options(), opts...)...)
}

// SetEvictCallback sets a function called for every entry removed by
// capacity eviction, expiry or Clear.
func (c *Cache[V]) SetEvictCallback(fn func(key string, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// GenerateKey is a convenience wrapper around the package level GenerateKey.
func (c *Cache[V]) GenerateKey(value any, ruleName string, params ...any) string {
	return GenerateKey(value, ruleName, params...)
}

// Get returns the stored value for key. Lapsed entries are removed and
// reported as absent. A disabled cache always misses.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	if !c.enabled || c.destroyed {
		c.misses++
		return zero, false
	}

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}

	e := elem.Value.(*entry[V])
	if e.expired(c.opts.now()) {
		c.removeElement(elem)
		c.misses++
		return zero, false
	}

	c.hits++
	return e.value, true
}

// Set stores value under key. Updating an existing key keeps its insertion
// position and refreshes its expiry. A disabled cache ignores the call.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || c.destroyed {
		return
	}

	var expireAt time.Time
	if c.opts.ttl > 0 {
		expireAt = c.opts.now().Add(c.opts.ttl)
	}

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.expireAt = expireAt
		return
	}

	for c.order.Len() >= c.opts.maxSize {
		c.removeElement(c.order.Front())
	}

	c.items[key] = c.order.PushBack(&entry[V]{key: key, value: value, expireAt: expireAt})
}

// Has reports whether key holds a live entry without touching hit/miss counters.
func (c *Cache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || c.destroyed {
		return false
	}

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	if elem.Value.(*entry[V]).expired(c.opts.now()) {
		c.removeElement(elem)
		return false
	}
	return true
}

// Delete removes key and reports whether it was stored.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(elem)
	delete(c.items, key)
	return true
}

// Clear drops every entry and resets the statistics.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cache[V]) clearLocked() {
	if c.onEvict != nil {
		for elem := c.order.Front(); elem != nil; elem = elem.Next() {
			e := elem.Value.(*entry[V])
			c.onEvict(e.key, e.value)
		}
	}
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.hits, c.misses = 0, 0
}

// CleanExpired removes every lapsed entry in one pass and returns how many
// were removed.
func (c *Cache[V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.now()
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*entry[V]).expired(now) {
			c.removeElement(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Len returns the number of stored entries, lapsed ones included until they
// are swept or read.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns stored keys in insertion order.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry[V]).key)
	}
	return keys
}

func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    c.order.Len(),
		MaxSize: c.opts.maxSize,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}

func (c *Cache[V]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses = 0, 0
}

// Disable turns every Get into a miss and every Set into a no-op. Stored
// entries are kept and become visible again after Enable.
func (c *Cache[V]) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
}

func (c *Cache[V]) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = true
}

func (c *Cache[V]) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Destroy stops the background sweep and clears storage. The cache must not
// be used afterwards; further calls behave like a disabled cache.
func (c *Cache[V]) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.clearLocked()
	stop, done := c.stop, c.done
	c.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

func (c *Cache[V]) sweep(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if n := c.CleanExpired(); n > 0 && c.opts.logger != nil {
				c.opts.logger.LogAttrs(context.Background(), slog.LevelDebug, "expired cache entries removed",
					logger.Count("removed", n),
				)
			}
		}
	}
}

// Must be called with lock held.
func (c *Cache[V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	e := elem.Value.(*entry[V])
	delete(c.items, e.key)

	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
