// Package colly implements wordhunt.PageFetcher on top of the colly scraping
// framework. Colly handles the request and content-type dispatch; links are
// collected from the parsed document through an OnHTML callback.
package colly

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/wordhunt"
	whhttp "github.com/fwojciec/wordhunt/http"
	"github.com/gocolly/colly/v2"
)

// Ensure PageFetcher implements wordhunt.PageFetcher at compile time.
var _ wordhunt.PageFetcher = (*PageFetcher)(nil)

// PageFetcher fetches pages with a fresh colly collector per call.
type PageFetcher struct {
	text        wordhunt.TextExtractor
	timeout     time.Duration
	userAgent   string
	maxBodySize int
	sameHost    bool
}

// Option configures a PageFetcher.
type Option func(*PageFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *PageFetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *PageFetcher) {
		f.userAgent = ua
	}
}

// WithSameHost keeps only links pointing at the host of the fetched page.
func WithSameHost() Option {
	return func(f *PageFetcher) {
		f.sameHost = true
	}
}

// NewPageFetcher creates a PageFetcher that extracts page text with text.
func NewPageFetcher(text wordhunt.TextExtractor, opts ...Option) *PageFetcher {
	f := &PageFetcher{
		text:        text,
		timeout:     whhttp.DefaultFetchTimeout,
		userAgent:   whhttp.DefaultUserAgent,
		maxBodySize: whhttp.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch visits url and reports the page as a FetchResult variant.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) wordhunt.FetchResult {
	if err := ctx.Err(); err != nil {
		return wordhunt.ResultFromError(err)
	}

	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent(f.userAgent),
		colly.MaxBodySize(f.maxBodySize),
		colly.StdlibContext(ctx),
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(f.timeout)

	var (
		body     string
		nonHTML  bool
		fetchErr error
		links    []string
		seen     = make(map[string]bool)
	)

	// Error responses reach OnResponse too; the status code decides the variant.
	c.OnResponse(func(r *colly.Response) {
		if !isSuccess(r.StatusCode) {
			fetchErr = &wordhunt.HTTPError{URL: rawURL, StatusCode: r.StatusCode}
			return
		}
		if !whhttp.IsHTML(r.Headers.Get("Content-Type")) {
			nonHTML = true
			return
		}
		body = string(r.Body)
	})

	c.OnHTML("a[href], area[href]", func(e *colly.HTMLElement) {
		if !isSuccess(e.Response.StatusCode) {
			return
		}
		link := f.normalize(e, rawURL)
		if link == "" || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 && !isSuccess(r.StatusCode) {
			fetchErr = &wordhunt.HTTPError{URL: rawURL, StatusCode: r.StatusCode}
			return
		}
		fetchErr = err
	})

	if err := c.Visit(rawURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return wordhunt.ResultFromError(ctxErr)
		}
		return wordhunt.ResultFromError(fetchErr)
	}
	if nonHTML {
		return wordhunt.FetchResult{Status: wordhunt.FetchNonHTML}
	}

	text, err := f.text.ExtractText(body)
	if err != nil {
		text = ""
	}
	return wordhunt.FetchResult{
		Status: wordhunt.FetchOK,
		Text:   text,
		Links:  links,
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// normalize resolves the element's href against the request URL and returns
// it without a fragment, or "" when the link should be ignored.
func (f *PageFetcher) normalize(e *colly.HTMLElement, pageURL string) string {
	href := strings.TrimSpace(e.Attr("href"))
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	abs := e.Request.AbsoluteURL(href)
	if abs == "" {
		return ""
	}
	u, err := url.Parse(abs)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if f.sameHost && u.Host != e.Request.URL.Host {
		return ""
	}
	u.Fragment = ""
	link := u.String()
	if link == pageURL || link == e.Request.URL.String() {
		return ""
	}
	return link
}
