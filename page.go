package pagedigest

import (
	"bytes"
	"encoding/json"
)

// PageResult is the analyzed record produced for one processed URL.
type PageResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`

	// MainText is whitespace-normalized, mojibake-corrected plain text.
	// It is the single input of every analysis stage and never contains HTML.
	MainText string `json:"main_text"`

	// Summary holds at most three sentences of KeyPoints, joined by spaces.
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`

	Entities       Entities       `json:"entities"`
	Keywords       []string       `json:"keywords"`
	ExtractedLinks []string       `json:"extracted_links"`
	Announcements  []Announcement `json:"announcements"`
}

// MarshalJSON serializes the result with empty lists instead of nulls and
// without HTML escaping.
func (r PageResult) MarshalJSON() ([]byte, error) {
	type plain PageResult
	p := plain(r)
	p.KeyPoints = emptyIfNil(p.KeyPoints)
	p.Keywords = emptyIfNil(p.Keywords)
	p.ExtractedLinks = emptyIfNil(p.ExtractedLinks)
	if p.Announcements == nil {
		p.Announcements = []Announcement{}
	}
	p.Entities = p.Entities.orEmpty()
	return marshalUnescaped(p)
}

// Entities groups named entities by category. Each category is an ordered
// set of distinct strings.
type Entities struct {
	Orgs      []string `json:"orgs"`
	People    []string `json:"people"`
	Locations []string `json:"locations"`
	Other     []string `json:"other"`
}

func (e Entities) orEmpty() Entities {
	return Entities{
		Orgs:      emptyIfNil(e.Orgs),
		People:    emptyIfNil(e.People),
		Locations: emptyIfNil(e.Locations),
		Other:     emptyIfNil(e.Other),
	}
}

// Announcement is a dated item published by a structured source.
// Date is kept in the source's own format.
type Announcement struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Link  string `json:"link"`
	ID    string `json:"id,omitempty"`
}

// Validate returns an error if the announcement cannot be emitted.
func (a *Announcement) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "announcement title required")
	}
	return nil
}

// BatchError records a URL that could not be processed.
type BatchError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// BatchResult is the outcome of processing a list of URLs.
// Count always equals len(Results).
type BatchResult struct {
	Count   int           `json:"count"`
	Results []*PageResult `json:"results"`
	Errors  []BatchError  `json:"errors"`
}

// MarshalJSON serializes the batch with empty lists instead of nulls and
// without HTML escaping.
func (b BatchResult) MarshalJSON() ([]byte, error) {
	type plain BatchResult
	p := plain(b)
	if p.Results == nil {
		p.Results = []*PageResult{}
	}
	if p.Errors == nil {
		p.Errors = []BatchError{}
	}
	return marshalUnescaped(p)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
