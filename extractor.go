package pagedigest

// MainContent holds the text and links extracted from a generic page.
type MainContent struct {
	// Title comes from the document title, else the first level-1 heading.
	Title string

	// Text is the normalized text of the selected main container.
	Text string

	// DocumentText is the normalized text of the whole document after
	// structural noise removal. Used when Text is suspiciously short.
	DocumentText string

	// Links are absolute outbound URLs found in the main container.
	Links []string
}

// ContentExtractor strips navigational noise from arbitrary HTML and selects
// the container most likely to hold the page's substantive text.
type ContentExtractor interface {
	// Extract parses html and returns its main content.
	// baseURL resolves relative links.
	Extract(html string, baseURL string) (*MainContent, error)
}
