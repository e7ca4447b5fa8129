package mock

import (
	"context"

	"github.com/fwojciec/wordhunt"
)

var _ wordhunt.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wordhunt.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ wordhunt.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of wordhunt.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) wordhunt.FetchResult
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) wordhunt.FetchResult {
	return f.FetchFn(ctx, url)
}
