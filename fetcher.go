package wordhunt

import (
	"context"
	"errors"
)

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// A non-success status is reported as *HTTPError and a response
	// that is not HTML as an EUNSUPPORTED error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// FetchStatus identifies the variant of a FetchResult.
type FetchStatus int

// Fetch result variants.
const (
	FetchOK FetchStatus = iota
	FetchNonHTML
	FetchHTTPError
	FetchNetworkError
)

// String returns the lowercase name of the status.
func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchNonHTML:
		return "non_html"
	case FetchHTTPError:
		return "http_error"
	case FetchNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// ParseFetchStatus is the inverse of FetchStatus.String.
func ParseFetchStatus(s string) (FetchStatus, error) {
	switch s {
	case "ok":
		return FetchOK, nil
	case "non_html":
		return FetchNonHTML, nil
	case "http_error":
		return FetchHTTPError, nil
	case "network_error":
		return FetchNetworkError, nil
	}
	return 0, Errorf(EINVALID, "unknown fetch status %q", s)
}

// FetchResult is the outcome of fetching and parsing a single page.
type FetchResult struct {
	Status FetchStatus

	// Text is the extracted body text. Empty for anything but FetchOK.
	Text string

	// Links are absolute URLs in document order. Empty for anything but FetchOK.
	Links []string

	// StatusCode is set for FetchHTTPError.
	StatusCode int

	// Err is the underlying cause for FetchHTTPError and FetchNetworkError.
	Err error
}

// Failed reports whether the fetch itself failed.
// A non-HTML page is not a failure; it simply has no text and no links.
func (r FetchResult) Failed() bool {
	return r.Status == FetchHTTPError || r.Status == FetchNetworkError
}

// PageFetcher fetches a page and returns its text and outbound links.
// Implementations never return an error: every failure is reported
// through the FetchResult variant. Relative links must be resolved to
// absolute URLs before they are returned.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) FetchResult
}

// ResultFromError maps a Fetcher error onto the matching FetchResult variant.
func ResultFromError(err error) FetchResult {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return FetchResult{Status: FetchHTTPError, StatusCode: httpErr.StatusCode, Err: err}
	case ErrorCode(err) == EUNSUPPORTED:
		return FetchResult{Status: FetchNonHTML}
	default:
		return FetchResult{Status: FetchNetworkError, Err: err}
	}
}
