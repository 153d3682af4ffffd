package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock drives the cache's notion of time without sleeping.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(max int) (*Cache, *fakeClock) {
	c := New(max)
	clk := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	c.now = clk.now
	return c, clk
}

func counterFetch(calls *int, v any) FetchFunc {
	return func(ctx context.Context) (any, error) {
		*calls++
		return v, nil
	}
}

func TestFetchWithinTTLHitsCacheOnce(t *testing.T) {
	c, clk := newTestCache(0)
	calls := 0
	fn := counterFetch(&calls, "payload")

	v, err := c.Fetch(context.Background(), "/api/dashboard/stats", time.Second, fn)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if v != "payload" {
		t.Fatalf("value = %v", v)
	}

	clk.advance(999 * time.Millisecond)
	if _, err := c.Fetch(context.Background(), "/api/dashboard/stats", time.Second, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("network calls = %d, want 1", calls)
	}

	clk.advance(2 * time.Millisecond) // past the TTL now
	if _, err := c.Fetch(context.Background(), "/api/dashboard/stats", time.Second, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 2 {
		t.Fatalf("network calls = %d, want 2", calls)
	}
}

// The stored timestamp is the only freshness reference: a caller with a
// longer TTL can still be served an entry written by a short-TTL call.
func TestFetchMixedTTLsShareOneTimestamp(t *testing.T) {
	c, clk := newTestCache(0)
	calls := 0
	fn := counterFetch(&calls, 1)

	if _, err := c.Fetch(context.Background(), "/x", time.Second, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	clk.advance(5 * time.Second)
	if _, err := c.Fetch(context.Background(), "/x", time.Minute, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (minute TTL should accept 5s-old entry)", calls)
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	c, _ := newTestCache(0)
	calls := 0
	boom := errors.New("connection refused")
	failing := func(ctx context.Context) (any, error) {
		calls++
		return nil, boom
	}

	if _, err := c.Fetch(context.Background(), "/x", time.Minute, failing); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if _, err := c.Fetch(context.Background(), "/x", time.Minute, failing); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (errors must retry, not cache)", calls)
	}
}

func TestClearWipesEverything(t *testing.T) {
	c, _ := newTestCache(0)
	calls := 0
	fn := counterFetch(&calls, "v")

	for _, key := range []string{"/a", "/b", "/c"} {
		if _, err := c.Fetch(context.Background(), key, time.Minute, fn); err != nil {
			t.Fatalf("fetch %s: %v", key, err)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("len = %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len after clear = %d", c.Len())
	}
	if _, err := c.Fetch(context.Background(), "/a", time.Minute, fn); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 4 {
		t.Fatalf("calls = %d, want 4 (clear forces refetch)", calls)
	}
}

func TestLRUEviction(t *testing.T) {
	c, _ := newTestCache(2)
	calls := 0
	fn := counterFetch(&calls, "v")

	ctx := context.Background()
	c.Fetch(ctx, "/a", time.Minute, fn)
	c.Fetch(ctx, "/b", time.Minute, fn)
	c.Fetch(ctx, "/a", time.Minute, fn) // touch /a, /b is now oldest
	c.Fetch(ctx, "/c", time.Minute, fn) // evicts /b

	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	before := calls
	c.Fetch(ctx, "/a", time.Minute, fn)
	if calls != before {
		t.Fatal("/a should have survived eviction")
	}
	c.Fetch(ctx, "/b", time.Minute, fn)
	if calls != before+1 {
		t.Fatal("/b should have been evicted")
	}
}

// Concurrent misses on the same cold key must share one in-flight
// fetch, so one network call per TTL window holds across goroutines,
// not just within one.
func TestFetchConcurrentMissesSingleCall(t *testing.T) {
	c, _ := newTestCache(0)
	var calls atomic.Int64
	release := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), "/api/dashboard/stats", time.Minute, fn)
			if err != nil {
				t.Errorf("fetch: %v", err)
			}
			if v != "v" {
				t.Errorf("value = %v", v)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond) // let the callers pile onto the flight
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}
}

func TestDistinctKeysDistinctFetches(t *testing.T) {
	c, _ := newTestCache(0)
	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		return fmt.Sprintf("v%d", calls), nil
	}

	a, _ := c.Fetch(context.Background(), "/api/schools?page=1", time.Minute, fn)
	b, _ := c.Fetch(context.Background(), "/api/schools?page=2", time.Minute, fn)
	if a == b {
		t.Fatalf("pages shared a cache slot: %v", a)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}
