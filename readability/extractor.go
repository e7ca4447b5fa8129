// Package readability implements wordhunt.TextExtractor with go-readability,
// restricting the searchable text to a page's main article.
package readability

import (
	"strings"

	"github.com/fwojciec/wordhunt"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements wordhunt.TextExtractor at compile time.
var _ wordhunt.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the text of the main content.
// Pages readability cannot make sense of are handed to the fallback.
type Extractor struct {
	fallback wordhunt.TextExtractor
}

// NewExtractor creates a new Extractor. fallback may be nil, in which case
// pages without a recognisable article yield empty text.
func NewExtractor(fallback wordhunt.TextExtractor) *Extractor {
	return &Extractor{fallback: fallback}
}

// ExtractText returns the article text with whitespace collapsed.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err == nil {
		if text := strings.Join(strings.Fields(article.TextContent), " "); text != "" {
			return text, nil
		}
	}

	if e.fallback != nil {
		return e.fallback.ExtractText(rawHTML)
	}
	if err != nil {
		return "", wordhunt.Errorf(wordhunt.EINVALID, "readability: %v", err)
	}
	return "", nil
}
