package memory_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/passage/pkg/adapters/memory"
	"github.com/aretw0/passage/pkg/ports"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryCache_Contract(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := memory.NewCache(memory.WithClock(clock.Now))
	ports.RunReportCacheContract(t, cache, clock.Advance)
}
