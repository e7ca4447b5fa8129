package wordhunt

import "errors"

// ErrEmptyFrontier is returned by Frontier.NextUnvisited when no unvisited
// URL remains. It is a stop signal for the crawl, not a failure.
var ErrEmptyFrontier = errors.New("frontier exhausted")

// Frontier is the ordered queue of URLs pending a visit.
type Frontier interface {
	// EnqueueAll appends urls to the tail of the queue in order.
	// Duplicates are not filtered here.
	EnqueueAll(urls []string)

	// NextUnvisited removes entries from the head of the queue until it
	// finds one that has not been visited. The returned URL is not marked
	// visited. Returns ErrEmptyFrontier once the queue is exhausted.
	NextUnvisited() (string, error)

	// Len returns the number of queued entries, stale duplicates included.
	Len() int
}

// VisitedSet tracks URLs that have already been processed.
// It only grows during a crawl.
type VisitedSet interface {
	// Visit marks url as visited. It returns false if url was already visited.
	Visit(url string) bool

	// Visited returns true if url has been marked.
	Visited(url string) bool

	// Len returns the number of visited URLs.
	Len() int
}
