package keyedcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountKey struct {
	gameName string
	tagLine  string
	region   string
}

// Helper returning a fetch that counts its calls.
func countingFetch[V any](value V, err error, calls *atomic.Int32) FetchFunc[V] {
	return func(ctx context.Context) (V, error) {
		calls.Add(1)
		return value, err
	}
}

func TestGetOrFetchOnce(t *testing.T) {
	cache := New[accountKey, string]()
	key := accountKey{gameName: "Faker", tagLine: "KR1", region: "KR"}

	var calls atomic.Int32
	fetch := countingFetch("puuid-1", nil, &calls)

	first, err := cache.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)

	second, err := cache.GetOrFetch(context.Background(), key, fetch)
	require.NoError(t, err)

	assert.Equal(t, "puuid-1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestGetOrFetchDistinctKeys(t *testing.T) {
	cache := New[accountKey, string]()

	var calls atomic.Int32
	fetch := countingFetch("x", nil, &calls)

	_, _ = cache.GetOrFetch(context.Background(), accountKey{"a", "b", "EUW"}, fetch)
	_, _ = cache.GetOrFetch(context.Background(), accountKey{"a", "b", "NA"}, fetch)

	assert.Equal(t, int32(2), calls.Load())
	assert.ElementsMatch(t, []accountKey{{"a", "b", "EUW"}, {"a", "b", "NA"}}, cache.Keys())
}

// Failures are retried on the next call.
func TestGetOrFetchNoNegativeCaching(t *testing.T) {
	cache := New[int, string]()
	boom := errors.New("boom")

	var calls atomic.Int32
	_, err := cache.GetOrFetch(context.Background(), 1, countingFetch("", boom, &calls))
	assert.ErrorIs(t, err, boom)

	_, ok := cache.Get(1)
	assert.False(t, ok)

	value, err := cache.GetOrFetch(context.Background(), 1, countingFetch("ok", nil, &calls))
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetOrFetchDeduplicatesInFlight(t *testing.T) {
	cache := New[string, int]()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = cache.GetOrFetch(context.Background(), "key", fetch)
		}(i)
	}

	// Let every goroutine reach the flight before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, result := range results {
		assert.Equal(t, 42, result)
	}
}

func TestGetOrFetchContextCancelled(t *testing.T) {
	cache := New[string, int]()
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.GetOrFetch(ctx, "slow", func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReset(t *testing.T) {
	cache := New[int, string]()
	cache.Set(1, "a")
	cache.Set(2, "b")

	assert.Equal(t, map[int]string{1: "a", 2: "b"}, cache.Snapshot())

	cache.Delete(2)
	assert.Equal(t, 1, cache.Len())

	cache.Reset()
	assert.Equal(t, 0, cache.Len())

	var calls atomic.Int32
	_, _ = cache.GetOrFetch(context.Background(), 1, countingFetch("again", nil, &calls))
	assert.Equal(t, int32(1), calls.Load())
}

// A fetch that started before a reset must not repopulate the cache.
func TestResetDuringFetch(t *testing.T) {
	cache := New[int, string]()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.GetOrFetch(context.Background(), 1, func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	cache.Reset()
	close(release)
	<-done

	_, ok := cache.Get(1)
	assert.False(t, ok)
}

// A caller leaving doesn't fail the others waiting on the same fetch.
func TestGetOrFetchCallerCancelsSharedFetch(t *testing.T) {
	cache := New[string, int]()

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		close(started)
		<-release
		return 42, ctx.Err()
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.GetOrFetch(first, "key", fetch)
		firstErr <- err
	}()
	<-started

	type result struct {
		value int
		err   error
	}
	second := make(chan result, 1)
	go func() {
		value, err := cache.GetOrFetch(context.Background(), "key", fetch)
		second <- result{value, err}
	}()

	// Let the second caller join the flight.
	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, 42, res.value)
	assert.Equal(t, int32(1), calls.Load())

	cached, ok := cache.Get("key")
	assert.True(t, ok)
	assert.Equal(t, 42, cached)
}
