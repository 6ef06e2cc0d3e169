package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emanuelrivas243/streamia-server/models"
)

// fakeClock lets tests move wall-clock time forward deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMovieCache_HitWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	cache := NewMovieCache(60 * time.Second)
	cache.now = clock.Now

	cache.Set("popular:50", []models.Movie{{Title: "Ocean Waves"}})

	clock.Advance(59 * time.Second)
	movies, ok := cache.Get("popular:50")
	assert.True(t, ok)
	assert.Len(t, movies, 1)
}

func TestMovieCache_ExpiresByWallClock(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	cache := NewMovieCache(60 * time.Second)
	cache.now = clock.Now

	cache.Set("popular:50", []models.Movie{{Title: "Ocean Waves"}})

	clock.Advance(61 * time.Second)
	_, ok := cache.Get("popular:50")
	assert.False(t, ok)

	// Repeated reads stay misses until the slot is repopulated.
	_, ok = cache.Get("popular:50")
	assert.False(t, ok)
}

func TestMovieCache_KeysAreIsolated(t *testing.T) {
	cache := NewMovieCache(60 * time.Second)

	cache.Set("popular:50", []models.Movie{{Title: "Ocean Waves"}})

	_, ok := cache.Get("search:sunset:50")
	assert.False(t, ok)

	movies, ok := cache.Get("popular:50")
	assert.True(t, ok)
	assert.Equal(t, "Ocean Waves", movies[0].Title)
}
