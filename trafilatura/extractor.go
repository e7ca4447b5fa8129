// Package trafilatura implements wordhunt.TextExtractor with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/wordhunt"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements wordhunt.TextExtractor at compile time.
var _ wordhunt.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the text of the main content,
// leaving out navigation, footers and other boilerplate.
type Extractor struct {
	fallback       wordhunt.TextExtractor
	includeComment bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithComments includes the page's comment section in the text.
func WithComments() Option {
	return func(e *Extractor) {
		e.includeComment = true
	}
}

// NewExtractor creates a new Extractor. Pages trafilatura cannot extract
// anything from are handed to fallback when it is not nil.
func NewExtractor(fallback wordhunt.TextExtractor, opts ...Option) *Extractor {
	e := &Extractor{fallback: fallback}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractText returns the main content text with whitespace collapsed.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: !e.includeComment,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err == nil && result != nil {
		text := result.ContentText
		if text == "" && result.ContentNode != nil {
			text = nodeText(result.ContentNode)
		}
		if e.includeComment && result.CommentsText != "" {
			text += " " + result.CommentsText
		}
		if text = strings.Join(strings.Fields(text), " "); text != "" {
			return text, nil
		}
	}

	if e.fallback != nil {
		return e.fallback.ExtractText(rawHTML)
	}
	if err != nil {
		return "", wordhunt.Errorf(wordhunt.EINVALID, "trafilatura: %v", err)
	}
	return "", nil
}

// nodeText concatenates the text nodes below n, one space between each.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
