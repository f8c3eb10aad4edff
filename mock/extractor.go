package mock

import "github.com/fwojciec/pagedigest"

var _ pagedigest.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of pagedigest.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string, baseURL string) (*pagedigest.MainContent, error)
}

func (e *ContentExtractor) Extract(html string, baseURL string) (*pagedigest.MainContent, error) {
	return e.ExtractFn(html, baseURL)
}
