package services

import (
	"sync"
	"time"

	"github.com/emanuelrivas243/streamia-server/models"
)

// MovieCache is a small time-boxed cache for normalized provider fetches,
// keyed by request shape. Entries expire strictly by wall-clock elapsed
// time. Handlers run on separate goroutines, so access is mutex-guarded.
type MovieCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]movieCacheEntry
}

type movieCacheEntry struct {
	movies   []models.Movie
	storedAt time.Time
}

func NewMovieCache(ttl time.Duration) *MovieCache {
	return &MovieCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]movieCacheEntry),
	}
}

// Get returns the cached slice for key, or false when absent or expired.
func (c *MovieCache) Get(key string) ([]models.Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.movies, true
}

// Set stores movies under key, replacing any previous entry.
func (c *MovieCache) Set(key string, movies []models.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = movieCacheEntry{movies: movies, storedAt: c.now()}
}
