package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/wordhunt"
)

// Ensure PageFetcher implements wordhunt.PageFetcher at compile time.
var _ wordhunt.PageFetcher = (*PageFetcher)(nil)

// PageFetcher implements wordhunt.PageFetcher by combining a raw Fetcher
// with link and text extractors. Transport errors are retried and then
// mapped onto FetchResult variants; extraction errors only empty the
// corresponding field.
type PageFetcher struct {
	Fetcher wordhunt.Fetcher
	Links   wordhunt.LinkExtractor
	Text    wordhunt.TextExtractor

	// RetryDelays defaults to DefaultRetryDelays when nil.
	// An empty non-nil slice disables retries.
	RetryDelays []time.Duration

	// Logger, if set, is told about each retry.
	Logger LogFunc
}

// Fetch retrieves url and extracts its text and links.
func (p *PageFetcher) Fetch(ctx context.Context, url string) wordhunt.FetchResult {
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetryDelays(ctx, url, p.Fetcher.Fetch, p.Logger, delays)
	if err != nil {
		return wordhunt.ResultFromError(err)
	}

	result := wordhunt.FetchResult{Status: wordhunt.FetchOK}
	if links, err := p.Links.ExtractLinks(html, url); err == nil {
		result.Links = links
	}
	if text, err := p.Text.ExtractText(html); err == nil {
		result.Text = text
	}
	return result
}
