package keyedcache

import (
	"context"
	"errors"
	"leaguerats/pkg/errs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pages of ints where the cursor is the last item.
func pagedSource(data []int, size int, calls *int) PageFunc[int, int] {
	return func(ctx context.Context, after *int) ([]int, int, error) {
		*calls++

		start := 0
		if after != nil {
			for i, v := range data {
				if v == *after {
					start = i + 1
				}
			}
		}

		end := min(start+size, len(data))
		if start >= end {
			return nil, 0, nil
		}

		page := data[start:end]
		return page, page[len(page)-1], nil
	}
}

func TestPagerFirstIsMemoized(t *testing.T) {
	pager := NewPager[string, int, int]()
	calls := 0
	fetch := pagedSource([]int{1, 2, 3, 4, 5}, 2, &calls)

	first, err := pager.First(context.Background(), "EUW", fetch)
	require.NoError(t, err)
	again, err := pager.First(context.Background(), "EUW", fetch)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, first)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, calls)

	cursor, ok := pager.Cursor("EUW")
	assert.True(t, ok)
	assert.Equal(t, 2, cursor)
}

func TestPagerNextAdvancesCursor(t *testing.T) {
	pager := NewPager[string, int, int]()
	calls := 0
	fetch := pagedSource([]int{1, 2, 3, 4, 5}, 2, &calls)

	_, err := pager.First(context.Background(), "EUW", fetch)
	require.NoError(t, err)

	page, err := pager.Next(context.Background(), "EUW", fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, page)

	page, err = pager.Next(context.Background(), "EUW", fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, page)

	items, ok := pager.Items("EUW")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
	assert.False(t, pager.Exhausted("EUW"))

	// Empty page: exhausted, cursor untouched.
	page, err = pager.Next(context.Background(), "EUW", fetch)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.True(t, pager.Exhausted("EUW"))

	cursor, _ := pager.Cursor("EUW")
	assert.Equal(t, 5, cursor)

	// No more I/O once exhausted.
	before := calls
	_, err = pager.Next(context.Background(), "EUW", fetch)
	require.NoError(t, err)
	assert.Equal(t, before, calls)
}

func TestPagerNextBeforeFirst(t *testing.T) {
	pager := NewPager[string, int, int]()
	calls := 0

	_, err := pager.Next(context.Background(), "NA", pagedSource([]int{1}, 1, &calls))

	assert.ErrorIs(t, err, errs.ErrFirstPageNotLoaded)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Equal(t, 0, calls)
}

func TestPagerFetchFailure(t *testing.T) {
	pager := NewPager[string, int, int]()
	boom := errors.New("boom")
	failing := func(ctx context.Context, after *int) ([]int, int, error) { return nil, 0, boom }

	_, err := pager.First(context.Background(), "KR", failing)
	assert.ErrorIs(t, err, boom)

	_, ok := pager.Items("KR")
	assert.False(t, ok)

	// The next First call retries.
	calls := 0
	items, err := pager.First(context.Background(), "KR", pagedSource([]int{7}, 5, &calls))
	require.NoError(t, err)
	assert.Equal(t, []int{7}, items)

	// A failing next page keeps what was loaded.
	_, err = pager.Next(context.Background(), "KR", failing)
	assert.ErrorIs(t, err, boom)
	items, _ = pager.Items("KR")
	assert.Equal(t, []int{7}, items)
}

func TestPagerReset(t *testing.T) {
	pager := NewPager[string, int, int]()
	calls := 0
	fetch := pagedSource([]int{1, 2}, 1, &calls)

	_, _ = pager.First(context.Background(), "EUW", fetch)
	pager.Reset()

	_, ok := pager.Items("EUW")
	assert.False(t, ok)

	_, err := pager.Next(context.Background(), "EUW", fetch)
	assert.ErrorIs(t, err, errs.ErrFirstPageNotLoaded)
}

func TestPagerFirstCallerCancelsSharedFetch(t *testing.T) {
	pager := NewPager[string, int, int]()

	calls := 0
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, after *int) ([]int, int, error) {
		calls++
		close(started)
		<-release
		return []int{1, 2}, 2, ctx.Err()
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := pager.First(first, "EUW", fetch)
		firstErr <- err
	}()
	<-started

	secondErr := make(chan error, 1)
	var items []int
	go func() {
		var err error
		items, err = pager.First(context.Background(), "EUW", fetch)
		secondErr <- err
	}()

	// Let the second caller join the flight.
	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, []int{1, 2}, items)
	assert.Equal(t, 1, calls)

	cursor, ok := pager.Cursor("EUW")
	assert.True(t, ok)
	assert.Equal(t, 2, cursor)
}
