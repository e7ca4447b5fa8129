package crawl

import (
	"sync"

	"github.com/fwojciec/wordhunt"
	"github.com/fwojciec/wordhunt/bloom"
)

var _ wordhunt.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is an exact set of visited URLs with a Bloom filter in front
// of it. Lookups for URLs the filter has never seen skip the map; the map
// decides every positive answer, so a false positive never hides a page.
// It is safe for concurrent use by multiple goroutines.
type VisitedSet struct {
	mu     sync.Mutex
	filter *bloom.Filter
	urls   map[string]struct{}
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs.
func NewVisitedSet(n uint) *VisitedSet {
	return &VisitedSet{
		filter: bloom.NewFilter(n, visitedFalsePositiveRate),
		urls:   make(map[string]struct{}, n),
	}
}

// Visit marks url as visited and reports whether it was newly marked.
// Check and mark happen under one lock.
func (s *VisitedSet) Visit(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestAndAdd(url) {
		if _, ok := s.urls[url]; ok {
			return false
		}
	}
	s.urls[url] = struct{}{}
	return true
}

// Visited returns true if url has been marked.
func (s *VisitedSet) Visited(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.filter.MayContain(url) {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *VisitedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}
