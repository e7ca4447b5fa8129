package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/wordhunt"
	"github.com/fwojciec/wordhunt/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_NextUnvisited_returns_FIFO_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(crawl.NewVisitedSet(10))
	f.EnqueueAll([]string{"https://example.com/a", "https://example.com/b"})
	f.EnqueueAll([]string{"https://example.com/c"})

	for _, want := range []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"} {
		got, err := f.NextUnvisited()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := f.NextUnvisited()
	assert.ErrorIs(t, err, wordhunt.ErrEmptyFrontier)
}

func TestFrontier_EnqueueAll_keeps_duplicates(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(crawl.NewVisitedSet(10))
	f.EnqueueAll([]string{"https://example.com/a", "https://example.com/a", "https://example.com/b"})

	assert.Equal(t, 3, f.Len(), "duplicates are filtered at dequeue, not enqueue")
}

func TestFrontier_NextUnvisited_skips_visited(t *testing.T) {
	t.Parallel()

	visited := crawl.NewVisitedSet(10)
	f := crawl.NewFrontier(visited)
	f.EnqueueAll([]string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/a",
		"https://example.com/c",
	})

	visited.Visit("https://example.com/a")
	visited.Visit("https://example.com/b")

	got, err := f.NextUnvisited()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/c", got)
	assert.Equal(t, 0, f.Len(), "stale entries should have been discarded")
}

func TestFrontier_NextUnvisited_does_not_mark_visited(t *testing.T) {
	t.Parallel()

	visited := crawl.NewVisitedSet(10)
	f := crawl.NewFrontier(visited)
	f.EnqueueAll([]string{"https://example.com/a", "https://example.com/a"})

	got, err := f.NextUnvisited()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got)
	assert.False(t, visited.Visited(got))
	assert.Equal(t, 0, visited.Len())

	// Not marked, so the duplicate is still a candidate.
	got, err = f.NextUnvisited()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", got)
}

func TestFrontier_NextUnvisited_empty(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(crawl.NewVisitedSet(10))

	_, err := f.NextUnvisited()
	assert.ErrorIs(t, err, wordhunt.ErrEmptyFrontier)

	// Usable again after being exhausted.
	f.EnqueueAll([]string{"https://example.com/late"})
	got, err := f.NextUnvisited()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/late", got)
}

func TestFrontier_NextUnvisited_all_visited(t *testing.T) {
	t.Parallel()

	visited := crawl.NewVisitedSet(10)
	visited.Visit("https://example.com/a")
	f := crawl.NewFrontier(visited)
	f.EnqueueAll([]string{"https://example.com/a", "https://example.com/a"})

	_, err := f.NextUnvisited()
	assert.ErrorIs(t, err, wordhunt.ErrEmptyFrontier)
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(crawl.NewVisitedSet(1000))

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)

	var mu sync.Mutex
	popped := 0

	for i := range numGoroutines {
		go func() {
			defer wg.Done()
			for j := range numOpsPerGoroutine {
				f.EnqueueAll([]string{fmt.Sprintf("https://example.com/%d/%d", i, j)})
			}
		}()
	}
	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numOpsPerGoroutine {
				if _, err := f.NextUnvisited(); err == nil {
					mu.Lock()
					popped++
					mu.Unlock()
				}
				f.Len()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, numGoroutines*numOpsPerGoroutine, popped+f.Len())
}
