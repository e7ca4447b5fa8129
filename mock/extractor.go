package mock

import "github.com/fwojciec/wordhunt"

var _ wordhunt.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of wordhunt.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}

var _ wordhunt.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of wordhunt.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
