package application

import (
	"sync"
	"time"

	"github.com/example/session-planner/internal/timeutil"
)

// statsCache stores a recently computed statistics overview to avoid
// re-aggregating the full session history on every request while the data
// remains unchanged. Mutating services invalidate it through OnMutation.
type statsCache struct {
	mu      sync.RWMutex
	now     func() time.Time
	ttl     time.Duration
	entries map[string]statsCacheEntry
}

type statsCacheEntry struct {
	overview  StatsOverview
	expiresAt time.Time
}

func newStatsCache(ttl time.Duration, now func() time.Time) *statsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &statsCache{
		now:     now,
		ttl:     ttl,
		entries: make(map[string]statsCacheEntry),
	}
}

func (c *statsCache) Get(key string) (StatsOverview, bool) {
	if c == nil {
		return StatsOverview{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return StatsOverview{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return StatsOverview{}, false
	}
	return entry.overview, true
}

func (c *statsCache) Store(key string, overview StatsOverview) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for existing, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, existing)
		}
	}
	c.entries[key] = statsCacheEntry{overview: overview, expiresAt: expiry}
}

func (c *statsCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]statsCacheEntry)
	c.mu.Unlock()
}

// The overview is a function of the stored sessions and the current day, so
// the key only needs to distinguish days.
func statsCacheKey(now time.Time) string {
	return timeutil.StartOfDay(now).Format(time.RFC3339)
}
