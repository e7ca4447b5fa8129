// Package goquery implements wordhunt extractors on top of goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wordhunt"
)

var _ wordhunt.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the absolute URLs of all anchors in a page.
type LinkExtractor struct {
	sameHost bool
}

// Option configures a LinkExtractor.
type Option func(*LinkExtractor)

// WithSameHost drops links whose host differs from the page's host.
func WithSameHost() Option {
	return func(e *LinkExtractor) {
		e.sameHost = true
	}
}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor(opts ...Option) *LinkExtractor {
	e := &LinkExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractLinks parses HTML and returns absolute http(s) URLs in document
// order. Relative references are resolved against the document's <base>
// element when present, otherwise against baseURL. Fragments are
// stripped; repeated links and links back to the page itself are dropped.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	page, err := url.Parse(baseURL)
	if err != nil {
		return nil, wordhunt.Errorf(wordhunt.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wordhunt.Errorf(wordhunt.EINVALID, "failed to parse HTML: %v", err)
	}

	base := page
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			base = page.ResolveReference(ref)
		}
	}

	self := stripFragment(page)
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href], area[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if e.sameHost && resolved.Host != page.Host {
			return
		}

		link := stripFragment(resolved)
		if link == self || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links, nil
}

func stripFragment(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
