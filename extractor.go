package wordhunt

// LinkExtractor extracts outbound links from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns absolute URLs in document order.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// TextExtractor extracts searchable text from HTML.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}
