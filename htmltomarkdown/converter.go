// Package htmltomarkdown implements wordhunt.TextExtractor by rendering a
// page as Markdown, so searches also see link targets and image alt text.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wordhunt"
)

// Ensure Converter implements wordhunt.TextExtractor at compile time.
var _ wordhunt.TextExtractor = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wordhunt.Errorf(wordhunt.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// ExtractText returns the Markdown rendering of the page.
// Empty input yields empty text.
func (c *Converter) ExtractText(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return c.Convert(html)
}
