package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/passage/pkg/domain"
)

type entry struct {
	report  *domain.RequirementReport
	expires time.Time
}

// Cache implements ports.ReportCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]entry
	mu   sync.RWMutex
	now  func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a new in-memory cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the cached report, so callers can't mutate the cache by pointer.
func (c *Cache) Get(ctx context.Context, key string) (*domain.RequirementReport, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		c.mu.Lock()
		// Re-check: another writer may have refreshed the entry.
		if cur, ok := c.data[key]; ok && cur.expires.Equal(e.expires) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, domain.ErrCacheMiss
	}
	return e.report.Clone(), nil
}

// Set stores a copy of report.
func (c *Cache) Set(ctx context.Context, key string, report *domain.RequirementReport, ttl time.Duration) error {
	e := entry{report: report.Clone()}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Close is a no-op.
func (c *Cache) Close() error {
	return nil
}
