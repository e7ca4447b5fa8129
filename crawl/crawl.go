// Package crawl provides breadth-first word search orchestration.
// It owns the frontier, the visited set and the termination decision;
// fetching and parsing are delegated to a wordhunt.PageFetcher.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wordhunt"
)

const (
	// visitedFalsePositiveRate is the Bloom prefilter false positive rate.
	visitedFalsePositiveRate = 0.01
	// maxExpectedURLs caps the prefilter size when the budget is very large.
	maxExpectedURLs = 100000
)

var _ wordhunt.Searcher = (*Crawler)(nil)

// ProgressFunc is a callback receiving each visit as soon as it completes.
type ProgressFunc func(visit wordhunt.Visit)

// Crawler runs bounded breadth-first word searches.
// A Crawler holds no per-search state and may run several searches at once.
type Crawler struct {
	Fetcher  wordhunt.PageFetcher
	Progress ProgressFunc
}

// Search crawls breadth-first from s.SeedURL looking for s.Word.
// The crawl stops when the word is found, when s.MaxPages pages have been
// visited, or when no unvisited URL remains. Fetch failures are recorded
// in the trace and skipped. If ctx is canceled the outcome so far is
// returned along with ctx.Err().
func (c *Crawler) Search(ctx context.Context, s wordhunt.Search) (*wordhunt.Outcome, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r := newRun(s)
	return r.execute(ctx, c.Fetcher, c.Progress)
}

// run is the state of a single search. It is discarded when the search ends.
type run struct {
	search   wordhunt.Search
	needle   string
	visited  *VisitedSet
	frontier *Frontier
	outcome  *wordhunt.Outcome
}

func newRun(s wordhunt.Search) *run {
	visited := NewVisitedSet(expectedURLs(s.MaxPages))
	return &run{
		search:   s,
		needle:   strings.ToLower(s.Word),
		visited:  visited,
		frontier: NewFrontier(visited),
		outcome:  &wordhunt.Outcome{},
	}
}

// expectedURLs sizes the visited set for a budget.
func expectedURLs(maxPages int) uint {
	if maxPages > maxExpectedURLs {
		return maxExpectedURLs
	}
	return uint(maxPages)
}

func (r *run) execute(ctx context.Context, fetcher wordhunt.PageFetcher, progress ProgressFunc) (*wordhunt.Outcome, error) {
	for r.visited.Len() < r.search.MaxPages {
		if err := ctx.Err(); err != nil {
			r.outcome.Visits = r.visited.Len()
			return r.outcome, err
		}

		current, err := r.next()
		if errors.Is(err, wordhunt.ErrEmptyFrontier) {
			return r.finish(wordhunt.StopFrontier), nil
		}
		// Marked before the fetch so a slow or failing page is never fetched twice.
		r.visited.Visit(current)

		begin := time.Now()
		res := fetcher.Fetch(ctx, current)
		visit := wordhunt.Visit{
			Seq:        r.visited.Len(),
			URL:        current,
			Status:     res.Status,
			StatusCode: res.StatusCode,
			Links:      len(res.Links),
			Err:        res.Err,
			Duration:   time.Since(begin),
		}
		if res.Text != "" {
			visit.ContentHash = computeHash(res.Text)
		}
		r.outcome.Trace = append(r.outcome.Trace, visit)
		if progress != nil {
			progress(visit)
		}

		if res.Failed() {
			continue
		}

		if r.matches(res.Text) {
			r.outcome.Found = true
			r.outcome.URL = current
			return r.finish(wordhunt.StopFound), nil
		}

		r.frontier.EnqueueAll(res.Links)
	}

	return r.finish(wordhunt.StopBudget), nil
}

// next returns the URL to visit. The seed is used directly while nothing
// has been visited; after that only the frontier supplies URLs.
func (r *run) next() (string, error) {
	if r.visited.Len() == 0 {
		return r.search.SeedURL, nil
	}
	return r.frontier.NextUnvisited()
}

// matches reports whether text contains the target word, ignoring case.
func (r *run) matches(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), r.needle)
}

func (r *run) finish(reason wordhunt.StopReason) *wordhunt.Outcome {
	r.outcome.Reason = reason
	r.outcome.Visits = r.visited.Len()
	return r.outcome
}

// computeHash returns the hex-encoded xxHash of page text.
func computeHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
