package cache

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestCache(maxItems int, ttl time.Duration) (*Cache[string, int], *time.Time) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c := New[string, int](Config{MaxItems: maxItems, TTL: ttl})
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Stats() = %d, %d, %v, want 1, 1, 50", hits, misses, rate)
	}
}

func TestCache_Expiry(t *testing.T) {
	c, now := newTestCache(10, time.Minute)

	c.Set("a", 1)
	c.SetWithTTL("forever", 2, 0)
	*now = now.Add(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) should miss after TTL")
	}
	if got, ok := c.Get("forever"); !ok || got != 2 {
		t.Errorf("Get(forever) = %v, %v, want 2, true", got, ok)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestCache_Cleanup(t *testing.T) {
	c, now := newTestCache(10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	*now = now.Add(time.Hour)
	c.cleanup()
	if c.Size() != 0 {
		t.Errorf("Size() after cleanup = %d, want 0", c.Size())
	}
}

func TestCache_Eviction(t *testing.T) {
	c, now := newTestCache(2, time.Minute)

	c.Set("first", 1)
	*now = now.Add(time.Second)
	c.Set("second", 2)
	*now = now.Add(time.Second)
	c.Set("third", 3)

	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry should have been evicted")
	}

	// overwriting an existing key does not evict
	c.Set("third", 4)
	if c.Size() != 2 {
		t.Errorf("Size() after overwrite = %d, want 2", c.Size())
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		got, err := c.GetOrSet("k", fn)
		if err != nil || got != 42 {
			t.Fatalf("GetOrSet() = %v, %v", got, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	wantErr := errors.New("boom")
	if _, err := c.GetOrSet("e", func() (int, error) { return 0, wantErr }); err != wantErr {
		t.Errorf("GetOrSet() error = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get("e"); ok {
		t.Error("failed computation should not be cached")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](Config{MaxItems: 64, TTL: time.Minute, CleanupInterval: time.Millisecond})
	defer c.Close()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				c.Set(j%32, i)
				c.Get(j % 32)
			}
		}(i)
	}
	wg.Wait()

	if c.Size() > 64 {
		t.Errorf("Size() = %d, want <= 64", c.Size())
	}
	c.Close()
}

func TestHashKey(t *testing.T) {
	a := HashKey("calc", "100", "100", "100")
	b := HashKey("calc", "100", "100", "100")
	c := HashKey("calc", "100", "100", "101")

	if a != b {
		t.Errorf("HashKey() not deterministic: %s != %s", a, b)
	}
	if a == c {
		t.Error("HashKey() collided for different input")
	}
	if !strings.HasPrefix(a, "calc:") || len(a) != len("calc:")+32 {
		t.Errorf("HashKey() = %s, want calc: prefix and 32 hex digits", a)
	}
}
