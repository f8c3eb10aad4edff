package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
)

// DefaultLinkLimit caps the number of links collected from one page.
const DefaultLinkLimit = 80

// ExtractLinks collects absolute HTTP(S) links from the anchors below sel,
// in document order. Empty, javascript:, mailto: and fragment-only hrefs are
// skipped and relative hrefs are resolved against baseURL. Collection stops
// after limit matches; duplicates are removed afterwards, so fewer than
// limit links may be returned.
func ExtractLinks(sel *goquery.Selection, baseURL string, limit int) []string {
	if sel == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLinkLimit
	}

	base := parseBase(baseURL)

	var links []string
	sel.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || isSkippedHref(href) {
			return true
		}
		if abs := resolveURL(base, href); strings.HasPrefix(abs, "http") {
			links = append(links, abs)
		}
		return len(links) < limit
	})

	return pagedigest.DedupeLinks(links, limit)
}

// isSkippedHref reports whether href never leads to another document.
func isSkippedHref(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "#")
}
