package crawl

import (
	"sync"

	"github.com/fwojciec/wordhunt"
)

// Compile-time interface verification.
var _ wordhunt.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO queue of URLs. FIFO order makes the crawl
// breadth-first. Deduplication happens at dequeue time against the visited
// set, so the queue may hold stale duplicates.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	visited wordhunt.VisitedSet
	queue   []string
}

// NewFrontier creates an empty Frontier that skips URLs found in visited.
func NewFrontier(visited wordhunt.VisitedSet) *Frontier {
	return &Frontier{visited: visited}
}

// EnqueueAll appends urls to the tail of the queue, preserving their order.
func (f *Frontier) EnqueueAll(urls []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, urls...)
}

// NextUnvisited pops the head of the queue until it finds a URL that is not
// in the visited set. The URL is not marked visited.
// Returns wordhunt.ErrEmptyFrontier when the queue runs out.
func (f *Frontier) NextUnvisited() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.queue) > 0 {
		url := f.queue[0]
		f.queue[0] = ""
		f.queue = f.queue[1:]
		if !f.visited.Visited(url) {
			return url, nil
		}
	}
	f.queue = nil
	return "", wordhunt.ErrEmptyFrontier
}

// Len returns the number of queued entries.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}
