package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/wordhunt"
	"github.com/fwojciec/wordhunt/crawl"
	"github.com/fwojciec/wordhunt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// web is a scripted set of pages keyed by URL. URLs missing from the map
// answer with HTTP 404.
type web map[string]wordhunt.FetchResult

func page(text string, links ...string) wordhunt.FetchResult {
	return wordhunt.FetchResult{Status: wordhunt.FetchOK, Text: text, Links: links}
}

// fetcher returns a mock PageFetcher serving w and a function reporting
// the URLs fetched so far, in order.
func (w web) fetcher() (*mock.PageFetcher, func() []string) {
	var mu sync.Mutex
	var fetched []string
	f := &mock.PageFetcher{
		FetchFn: func(_ context.Context, url string) wordhunt.FetchResult {
			mu.Lock()
			fetched = append(fetched, url)
			mu.Unlock()
			if res, ok := w[url]; ok {
				return res
			}
			return wordhunt.FetchResult{
				Status:     wordhunt.FetchHTTPError,
				StatusCode: 404,
				Err:        &wordhunt.HTTPError{URL: url, StatusCode: 404},
			}
		},
	}
	return f, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), fetched...)
	}
}

func TestCrawler_Search(t *testing.T) {
	t.Parallel()

	t.Run("finds word on seed page after one visit", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://a.test": page("alpha beta gamma", "http://b.test", "http://c.test"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
		})

		require.NoError(t, err)
		assert.True(t, out.Found)
		assert.Equal(t, "http://a.test", out.URL)
		assert.Equal(t, 1, out.Visits)
		assert.Equal(t, wordhunt.StopFound, out.Reason)
		assert.Equal(t, []string{"http://a.test"}, fetched(), "no links should be followed once found")
	})

	t.Run("finds word on second page breadth first", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://a.test": page("alpha", "http://b.test", "http://c.test"),
			"http://b.test": page("here is gamma"),
			"http://c.test": page("gamma too"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, "found at http://b.test after 2 visits", out.String())
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, fetched())
	})

	t.Run("visits pages in breadth-first order", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://seed.test": page("root", "http://b.test", "http://c.test"),
			"http://b.test":    page("b", "http://d.test"),
			"http://c.test":    page("c"),
			"http://d.test":    page("d"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://seed.test", Word: "zeta", MaxPages: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"http://seed.test", "http://b.test", "http://c.test", "http://d.test"}, fetched())
		assert.False(t, out.Found)
		assert.Equal(t, 4, out.Visits)
		assert.Equal(t, wordhunt.StopFrontier, out.Reason)
	})

	t.Run("stops after one visit when seed has no links", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://a.test": page("nothing to see"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, "not found after 1 visit", out.String())
		assert.Equal(t, wordhunt.StopFrontier, out.Reason)
		assert.Len(t, fetched(), 1)
	})

	t.Run("stops when budget is exhausted", func(t *testing.T) {
		t.Parallel()

		w := web{}
		for i := range 20 {
			w[fmt.Sprintf("http://p%d.test", i)] = page("filler", fmt.Sprintf("http://p%d.test", i+1))
		}
		f, fetched := w.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://p0.test", Word: "gamma", MaxPages: 3,
		})

		require.NoError(t, err)
		assert.False(t, out.Found)
		assert.Equal(t, 3, out.Visits)
		assert.Equal(t, wordhunt.StopBudget, out.Reason)
		assert.Equal(t, []string{"http://p0.test", "http://p1.test", "http://p2.test"}, fetched())
	})

	t.Run("skips failed pages and keeps crawling", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://a.test":    page("start", "http://gone.test", "http://down.test", "http://ok.test"),
			"http://down.test": {Status: wordhunt.FetchNetworkError, Err: errors.New("connection refused")},
			"http://ok.test":   page("GAMMA rays"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, "found at http://ok.test after 4 visits", out.String())
		assert.Equal(t, []string{"http://a.test", "http://gone.test", "http://down.test", "http://ok.test"}, fetched())

		require.Len(t, out.Trace, 4)
		assert.Equal(t, wordhunt.FetchHTTPError, out.Trace[1].Status)
		assert.Equal(t, 404, out.Trace[1].StatusCode)
		assert.Error(t, out.Trace[1].Err)
		assert.Equal(t, wordhunt.FetchNetworkError, out.Trace[2].Status)
	})

	t.Run("failed seed ends the crawl", func(t *testing.T) {
		t.Parallel()

		f, _ := web{}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://missing.test", Word: "gamma", MaxPages: 5,
		})

		require.NoError(t, err)
		assert.False(t, out.Found)
		assert.Equal(t, 1, out.Visits)
		assert.Equal(t, wordhunt.StopFrontier, out.Reason)
	})

	t.Run("terminates on cycles visiting each page once", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://a.test": page("a", "http://b.test"),
			"http://b.test": page("b", "http://a.test"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, fetched())
		assert.Equal(t, 2, out.Visits)
		assert.Equal(t, wordhunt.StopFrontier, out.Reason)
	})

	t.Run("discards duplicate and self links at dequeue", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://a.test": page("a", "http://b.test", "http://b.test", "http://a.test", "http://c.test"),
			"http://b.test": page("b", "http://c.test", "http://b.test"),
			"http://c.test": page("c"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"http://a.test", "http://b.test", "http://c.test"}, fetched())
		assert.Equal(t, 3, out.Visits)
	})

	t.Run("non-HTML page counts as a visit without text or links", func(t *testing.T) {
		t.Parallel()

		f, fetched := web{
			"http://a.test":         page("a", "http://a.test/doc.pdf", "http://b.test"),
			"http://a.test/doc.pdf": {Status: wordhunt.FetchNonHTML},
			"http://b.test":         page("gamma"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
		})

		require.NoError(t, err)
		assert.Equal(t, "found at http://b.test after 3 visits", out.String())
		assert.Len(t, fetched(), 3)
		assert.Equal(t, wordhunt.FetchNonHTML, out.Trace[1].Status)
		assert.NoError(t, out.Trace[1].Err)
	})

	t.Run("matches case-insensitively inside words", func(t *testing.T) {
		t.Parallel()

		f, _ := web{
			"http://a.test": page("The OMEGAPOINT theory"),
		}.fetcher()
		c := &crawl.Crawler{Fetcher: f}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "OmegaPoint", MaxPages: 1,
		})

		require.NoError(t, err)
		assert.True(t, out.Found)
	})

	t.Run("records trace with sequence and content hash", func(t *testing.T) {
		t.Parallel()

		f, _ := web{
			"http://a.test": page("first", "http://b.test", "http://c.test"),
			"http://b.test": page("second"),
		}.fetcher()

		var events []wordhunt.Visit
		c := &crawl.Crawler{
			Fetcher:  f,
			Progress: func(v wordhunt.Visit) { events = append(events, v) },
		}

		out, err := c.Search(context.Background(), wordhunt.Search{
			SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
		})

		require.NoError(t, err)
		require.Len(t, out.Trace, 3)
		assert.Equal(t, out.Trace, events)

		assert.Equal(t, 1, out.Trace[0].Seq)
		assert.Equal(t, 2, out.Trace[0].Links)
		assert.Len(t, out.Trace[0].ContentHash, 16)
		assert.NotEqual(t, out.Trace[0].ContentHash, out.Trace[1].ContentHash)
		assert.Equal(t, 3, out.Trace[2].Seq)
		assert.Empty(t, out.Trace[2].ContentHash, "failed page has no content")
	})
}

func TestCrawler_Search_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		search wordhunt.Search
	}{
		{"empty seed", wordhunt.Search{Word: "gamma", MaxPages: 1}},
		{"relative seed", wordhunt.Search{SeedURL: "/docs", Word: "gamma", MaxPages: 1}},
		{"non-http seed", wordhunt.Search{SeedURL: "ftp://a.test", Word: "gamma", MaxPages: 1}},
		{"empty word", wordhunt.Search{SeedURL: "http://a.test", Word: "  ", MaxPages: 1}},
		{"zero budget", wordhunt.Search{SeedURL: "http://a.test", Word: "gamma"}},
		{"negative budget", wordhunt.Search{SeedURL: "http://a.test", Word: "gamma", MaxPages: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, fetched := web{}.fetcher()
			c := &crawl.Crawler{Fetcher: f}

			out, err := c.Search(context.Background(), tt.search)

			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, wordhunt.EINVALID, wordhunt.ErrorCode(err))
			assert.Empty(t, fetched(), "no fetch should happen before validation passes")
		})
	}
}

func TestCrawler_Search_ContextCanceled(t *testing.T) {
	t.Parallel()

	f, fetched := web{
		"http://a.test": page("a", "http://b.test"),
		"http://b.test": page("b"),
	}.fetcher()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &crawl.Crawler{
		Fetcher:  f,
		Progress: func(wordhunt.Visit) { cancel() },
	}

	out, err := c.Search(ctx, wordhunt.Search{
		SeedURL: "http://a.test", Word: "gamma", MaxPages: 10,
	})

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Visits)
	assert.Len(t, fetched(), 1)
}

func TestCrawler_Search_Invariants(t *testing.T) {
	t.Parallel()

	// A grid-like graph where page i links to 2i+1, 2i+2 and back to i/2,
	// truncated at 40 pages.
	const total = 40
	w := web{}
	for i := range total {
		var links []string
		for _, j := range []int{2*i + 1, 2*i + 2, i / 2} {
			if j < total {
				links = append(links, fmt.Sprintf("http://n%d.test", j))
			}
		}
		w[fmt.Sprintf("http://n%d.test", i)] = page("node", links...)
	}

	for _, maxPages := range []int{1, 2, 7, 39, 40, 41, 100} {
		t.Run(fmt.Sprintf("max pages %d", maxPages), func(t *testing.T) {
			t.Parallel()

			f, fetched := w.fetcher()
			c := &crawl.Crawler{Fetcher: f}

			out, err := c.Search(context.Background(), wordhunt.Search{
				SeedURL: "http://n0.test", Word: "gamma", MaxPages: maxPages,
			})
			require.NoError(t, err)

			urls := fetched()
			seen := make(map[string]bool)
			for _, u := range urls {
				assert.False(t, seen[u], "%s fetched twice", u)
				seen[u] = true
			}
			assert.LessOrEqual(t, out.Visits, maxPages)
			assert.Equal(t, min(maxPages, total), out.Visits)
			assert.Len(t, urls, out.Visits)
		})
	}
}

func TestCrawler_Search_IndependentRuns(t *testing.T) {
	t.Parallel()

	f, _ := web{
		"http://a.test": page("a", "http://b.test"),
		"http://b.test": page("beta", "http://a.test"),
	}.fetcher()
	c := &crawl.Crawler{Fetcher: f}

	var wg sync.WaitGroup
	outcomes := make([]*wordhunt.Outcome, 8)
	for i := range outcomes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := c.Search(context.Background(), wordhunt.Search{
				SeedURL: "http://a.test", Word: "beta", MaxPages: 5,
			})
			if err == nil {
				outcomes[i] = out
			}
		}()
	}
	wg.Wait()

	for _, out := range outcomes {
		require.NotNil(t, out)
		assert.Equal(t, "found at http://b.test after 2 visits", out.String())
	}
}
