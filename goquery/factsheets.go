package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
)

const factSheetItemSelector = "div.wp-block-query ul.wp-block-post-template > li"

var longDate = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\b`)

// ParseFactSheets parses the White House fact sheet listing into at most
// topN announcements. Each item needs a title and a date; the date comes
// from a time element or, failing that, from a "Month D, YYYY" phrase in
// the item text.
func ParseFactSheets(rawHTML string, baseURL string, topN int) ([]pagedigest.Announcement, error) {
	doc, err := parseHTML(rawHTML)
	if err != nil {
		return nil, err
	}
	RemoveNoise(doc)

	base := parseBase(baseURL)

	var items []pagedigest.Announcement
	doc.Find(factSheetItemSelector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if topN > 0 && len(items) >= topN {
			return false
		}

		a := li.Find("h2.wp-block-post-title a[href]").First()
		if a.Length() == 0 {
			a = li.Find("a.wp-block-post-title__link[href]").First()
		}
		if a.Length() == 0 {
			return true
		}

		item := pagedigest.Announcement{
			Title: clean.Normalize(Text(a)),
			Link:  resolveURL(base, a.AttrOr("href", "")),
			Date:  clean.Normalize(Text(li.Find("time").First())),
		}
		if item.Date == "" {
			item.Date = longDate.FindString(clean.Normalize(Text(li)))
		}
		if item.Date == "" || item.Validate() != nil {
			return true
		}

		items = append(items, item)
		return topN <= 0 || len(items) < topN
	})

	return items, nil
}
