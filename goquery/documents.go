package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
)

// DocumentRowSelector matches one result row of the documents library search.
const DocumentRowSelector = "div.view-content div.item-list ol.usa-list--unstyled > li"

var (
	dateToken  = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|\d{1,2}|\d{4})\b`)
	monthToken = regexp.MustCompile(`^(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)$`)
	dayToken   = regexp.MustCompile(`^\d{1,2}$`)
	yearToken  = regexp.MustCompile(`^\d{4}$`)
)

// ParseDocumentsLibrary parses the CBP documents library listing into at
// most topN announcements. Rows without an abbreviated "Mon D YYYY" date
// sequence are skipped.
func ParseDocumentsLibrary(rawHTML string, baseURL string, topN int) ([]pagedigest.Announcement, error) {
	doc, err := parseHTML(rawHTML)
	if err != nil {
		return nil, err
	}
	RemoveNoise(doc)

	base := parseBase(baseURL)

	var items []pagedigest.Announcement
	doc.Find(DocumentRowSelector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if topN > 0 && len(items) >= topN {
			return false
		}

		a := li.Find("a[href]").First()
		if a.Length() == 0 {
			return true
		}

		item := pagedigest.Announcement{
			Title: clean.Normalize(Text(a)),
			Link:  resolveURL(base, a.AttrOr("href", "")),
			Date:  findShortDate(Text(li)),
		}
		if item.Date == "" || item.Validate() != nil {
			return true
		}

		items = append(items, item)
		return topN <= 0 || len(items) < topN
	})

	return items, nil
}

// findShortDate returns the first month, day, year token triple in text
// joined by spaces, or an empty string.
func findShortDate(text string) string {
	tokens := dateToken.FindAllString(text, -1)
	for i := 0; i+2 < len(tokens); i++ {
		if monthToken.MatchString(tokens[i]) &&
			dayToken.MatchString(tokens[i+1]) &&
			yearToken.MatchString(tokens[i+2]) {
			return strings.Join(tokens[i:i+3], " ")
		}
	}
	return ""
}
