package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripplanner/internal/cache"
)

// fakeClock is a controllable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestStore_GetPut(t *testing.T) {
	store := cache.New[string, int](time.Minute)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Put("a", 42)
	v, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestStore_Freshness(t *testing.T) {
	const ttl = 30 * time.Minute
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := cache.NewWithClock[string, string](ttl, clock.Now)

	store.Put("delhi|mumbai|2026-03-01", "trains")

	// One unit before the TTL the entry is still served.
	clock.Advance(ttl - time.Second)
	v, ok := store.Get("delhi|mumbai|2026-03-01")
	require.True(t, ok)
	assert.Equal(t, "trains", v)

	// One unit past the TTL it is absent.
	clock.Advance(2 * time.Second)
	_, ok = store.Get("delhi|mumbai|2026-03-01")
	assert.False(t, ok)
}

func TestStore_LazyEviction(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := cache.NewWithClock[string, int](time.Minute, clock.Now)

	store.Put("a", 1)
	store.Put("b", 2)
	clock.Advance(2 * time.Minute)

	// Both entries are expired, but nothing is evicted until a lookup
	// touches the key.
	assert.Equal(t, 2, store.Len())

	_, ok := store.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestStore_PutRefreshesAge(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := cache.NewWithClock[string, int](time.Minute, clock.Now)

	store.Put("a", 1)
	clock.Advance(50 * time.Second)
	store.Put("a", 2)
	clock.Advance(50 * time.Second)

	// The rewrite reset the entry's age, so it is still fresh.
	v, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestStore_StructKeys(t *testing.T) {
	type key struct {
		Origin, Destination, Date string
	}
	store := cache.New[key, []string](time.Minute)

	store.Put(key{"delhi", "goa", "2026-03-01"}, []string{"t1", "t2"})

	v, ok := store.Get(key{"delhi", "goa", "2026-03-01"})
	require.True(t, ok)
	assert.Equal(t, []string{"t1", "t2"}, v)

	_, ok = store.Get(key{"delhi", "goa", "2026-03-02"})
	assert.False(t, ok)
}
