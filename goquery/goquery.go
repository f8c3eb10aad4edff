// Package goquery implements HTML processing on top of goquery: noise
// removal, main-content selection, link extraction and the parsers of the
// structured sources.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
	"golang.org/x/net/html"
)

// parseHTML parses raw HTML into a document.
func parseHTML(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagedigest.Errorf(pagedigest.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// Text returns the text of every node in sel. Each text node is trimmed,
// empty ones are skipped and the rest are joined by single spaces.
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// removeNode detaches every node of sel from the tree.
// A failure leaves the node in place.
func removeNode(sel *goquery.Selection) {
	defer func() { _ = recover() }()
	sel.Remove()
}

// resolveURL resolves href against base. Hrefs that are not valid URLs,
// such as "/p%zz", are joined to base as plain strings.
// Returns an empty string if href is empty.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return joinRaw(base, href)
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// joinRaw joins href to base without parsing or escaping href.
func joinRaw(base *url.URL, href string) string {
	switch {
	case schemePrefix.MatchString(href), base == nil:
		return href
	case strings.HasPrefix(href, "//"):
		return base.Scheme + ":" + href
	case strings.HasPrefix(href, "/"):
		return base.Scheme + "://" + base.Host + href
	}
	dir := "/"
	if i := strings.LastIndex(base.Path, "/"); i >= 0 {
		dir = base.Path[:i+1]
	}
	return base.Scheme + "://" + base.Host + dir + href
}

// parseBase parses a base URL, returning nil when it is invalid.
func parseBase(baseURL string) *url.URL {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}
	return base
}
