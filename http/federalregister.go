package http

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
)

// FederalRegisterEndpoint is the documents search endpoint of the Federal
// Register API.
const FederalRegisterEndpoint = "https://www.federalregister.gov/api/v1/documents.json"

// FederalRegisterURL builds a search request for the newest perPage
// documents matching term.
func FederalRegisterURL(endpoint, term string, perPage int) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("order", "newest")
	q.Set("conditions[term]", term)
	return endpoint + "?" + q.Encode()
}

type federalRegisterResponse struct {
	Results []federalRegisterDocument `json:"results"`
}

type federalRegisterDocument struct {
	Title           string `json:"title"`
	PublicationDate string `json:"publication_date"`
	HTMLURL         string `json:"html_url"`
	DocumentNumber  string `json:"document_number"`
}

// ParseFederalRegister maps the first topN search results to announcements
// in response order. Results without a title or publication date are
// skipped.
func ParseFederalRegister(raw string, topN int) ([]pagedigest.Announcement, error) {
	var resp federalRegisterResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "invalid Federal Register response: %v", err)
	}

	results := resp.Results
	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	var items []pagedigest.Announcement
	for _, d := range results {
		item := pagedigest.Announcement{
			Title: clean.Normalize(d.Title),
			Date:  clean.Whitespace(d.PublicationDate),
			Link:  clean.Whitespace(d.HTMLURL),
			ID:    clean.Whitespace(d.DocumentNumber),
		}
		if item.Date == "" || item.Validate() != nil {
			continue
		}
		items = append(items, item)
	}

	return items, nil
}
