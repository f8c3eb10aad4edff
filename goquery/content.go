package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
)

// Ensure Extractor implements pagedigest.ContentExtractor at compile time.
var _ pagedigest.ContentExtractor = (*Extractor)(nil)

// MinMainTextLength is the text length a candidate container must exceed to
// be accepted as the main content. Shorter candidates are usually empty or
// skeleton containers.
const MinMainTextLength = 400

// Tags removed before any other processing.
const (
	noiseSelector  = "script, style, noscript, svg, canvas"
	chromeSelector = "header, footer, nav, aside"
)

// mainCandidates are tried in order when selecting the main container.
var mainCandidates = []string{
	"article",
	"main",
	"#main-content",
	"div#main-content",
	"div[role=main]",
}

// noiseIdentifiers mark elements whose id or class names them as page chrome.
var noiseIdentifiers = []string{
	"breadcrumb", "sidebar", "menu", "nav", "footer", "header",
	"social", "share", "cookie", "banner", "alert", "promo",
	"related", "subscribe", "signup", "modal",
}

// Main is the result of main-content selection on a single document.
type Main struct {
	// Title is the document title, else the first h1, else empty.
	Title string

	// Container is the selected main-content subtree with identifier noise
	// removed.
	Container *goquery.Selection

	// DocumentText is the normalized text of the whole document after
	// structural noise removal.
	DocumentText string
}

// Text returns the normalized text of the container.
func (m *Main) Text() string {
	return clean.Normalize(Text(m.Container))
}

// Links returns the absolute links found in the container.
func (m *Main) Links(baseURL string, limit int) []string {
	return ExtractLinks(m.Container, baseURL, limit)
}

// SelectMain parses rawHTML, strips non-content regions and selects the
// container most likely to hold the page's substantive text.
func SelectMain(rawHTML string) (*Main, error) {
	doc, err := parseHTML(rawHTML)
	if err != nil {
		return nil, err
	}

	RemoveNoise(doc)

	m := &Main{
		Title:        Title(doc),
		DocumentText: clean.Normalize(Text(doc.Selection)),
	}
	m.Container = bestContainer(doc)
	StripByIdentifiers(m.Container)

	return m, nil
}

// RemoveNoise removes script, style and embedded graphics nodes, then the
// structural chrome (header, footer, nav, aside) regardless of content.
func RemoveNoise(doc *goquery.Document) {
	doc.Find(noiseSelector).Each(func(_ int, sel *goquery.Selection) {
		removeNode(sel)
	})
	doc.Find(chromeSelector).Each(func(_ int, sel *goquery.Selection) {
		removeNode(sel)
	})
}

// Title returns the document title, falling back to the first level-1
// heading. Returns an empty string if neither has text.
func Title(doc *goquery.Document) string {
	if t := clean.Normalize(Text(doc.Find("title").First())); t != "" {
		return t
	}
	return clean.Normalize(Text(doc.Find("h1").First()))
}

// StripByIdentifiers removes every element below sel whose id or class
// list contains a noise identifier such as "breadcrumb" or "cookie".
func StripByIdentifiers(sel *goquery.Selection) {
	if sel == nil {
		return
	}
	sel.Find("*").Each(func(_ int, el *goquery.Selection) {
		if hasNoiseIdentifier(el) {
			removeNode(el)
		}
	})
}

func hasNoiseIdentifier(el *goquery.Selection) bool {
	id := el.AttrOr("id", "")
	classes := strings.Fields(el.AttrOr("class", ""))
	ident := strings.ToLower(id + " " + strings.Join(classes, " "))
	for _, k := range noiseIdentifiers {
		if strings.Contains(ident, k) {
			return true
		}
	}
	return false
}

// bestContainer returns the first candidate whose text is long enough,
// falling back to the body and then to the whole document.
func bestContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range mainCandidates {
		node := doc.Find(selector).First()
		if node.Length() == 0 {
			continue
		}
		if utf8.RuneCountInString(Text(node)) > MinMainTextLength {
			return node
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// Extractor implements pagedigest.ContentExtractor with the main-content
// heuristic of SelectMain.
type Extractor struct {
	linkLimit int
}

// NewExtractor creates a new Extractor that keeps up to DefaultLinkLimit links.
func NewExtractor() *Extractor {
	return &Extractor{linkLimit: DefaultLinkLimit}
}

// Extract processes raw HTML and returns its main content. An empty page
// yields empty content rather than an error.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*pagedigest.MainContent, error) {
	m, err := SelectMain(rawHTML)
	if err != nil {
		return nil, err
	}

	return &pagedigest.MainContent{
		Title:        m.Title,
		Text:         m.Text(),
		DocumentText: m.DocumentText,
		Links:        m.Links(baseURL, e.linkLimit),
	}, nil
}
