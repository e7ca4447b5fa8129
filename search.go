package wordhunt

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxPages is the page-visit budget used when none is given.
const DefaultMaxPages = 10

// Search describes a single word search.
type Search struct {
	SeedURL  string
	Word     string
	MaxPages int
}

// Validate returns an error if the search cannot be started.
func (s *Search) Validate() error {
	if s.SeedURL == "" {
		return Errorf(EINVALID, "seed URL required")
	}
	u, err := url.Parse(s.SeedURL)
	if err != nil {
		return Errorf(EINVALID, "invalid seed URL %q: %v", s.SeedURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "seed URL %q must be absolute", s.SeedURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "seed URL %q must use http or https", s.SeedURL)
	}
	if strings.TrimSpace(s.Word) == "" {
		return Errorf(EINVALID, "target word required")
	}
	if s.MaxPages < 1 {
		return Errorf(EINVALID, "max pages must be at least 1, got %d", s.MaxPages)
	}
	return nil
}

// Visit is one entry of the per-visit trace.
type Visit struct {
	Seq         int // 1-based position in visit order
	URL         string
	Status      FetchStatus
	StatusCode  int
	Links       int
	ContentHash string
	Err         error
	Duration    time.Duration
}

// StopReason records why a crawl ended.
type StopReason string

// Stop reasons.
const (
	StopFound    StopReason = "found"
	StopBudget   StopReason = "budget_exhausted"
	StopFrontier StopReason = "frontier_exhausted"
)

// Outcome is the terminal result of a search.
type Outcome struct {
	Found  bool
	URL    string // page the word was found on
	Visits int
	Reason StopReason
	Trace  []Visit
}

// String renders the outcome in one line.
func (o *Outcome) String() string {
	if o.Found {
		return fmt.Sprintf("found at %s after %d %s", o.URL, o.Visits, plural(o.Visits, "visit"))
	}
	return fmt.Sprintf("not found after %d %s", o.Visits, plural(o.Visits, "visit"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Searcher runs word searches.
type Searcher interface {
	// Search crawls from s.SeedURL until s.Word is found or the budget is spent.
	// Returns EINVALID before any fetch if s does not validate.
	Search(ctx context.Context, s Search) (*Outcome, error)
}
