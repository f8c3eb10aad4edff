package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
)

// CSMSStorySelector matches one bulletin in the CBP messaging-service widget.
// The widget is rendered by script, so callers wait for this selector before
// taking a snapshot of the page.
const CSMSStorySelector = "div.gdw_content div.gdw_story"

var csmsNumber = regexp.MustCompile(`(?i)(?:CSMS\s*)?#\s*([0-9]+)`)

// ParseCSMS parses the rendered messaging-service page into announcements
// in presentation order. Stories without a title link are skipped; the
// publication date is optional.
func ParseCSMS(rawHTML string, baseURL string) ([]pagedigest.Announcement, error) {
	doc, err := parseHTML(rawHTML)
	if err != nil {
		return nil, err
	}
	RemoveNoise(doc)

	base := parseBase(baseURL)

	var items []pagedigest.Announcement
	doc.Find(CSMSStorySelector).Each(func(_ int, story *goquery.Selection) {
		a := story.Find("div.gdw_story_title a[href]").First()
		if a.Length() == 0 {
			return
		}

		item := pagedigest.Announcement{
			Title: clean.Normalize(Text(a)),
			Link:  resolveURL(base, strings.TrimSpace(a.AttrOr("href", ""))),
			Date:  clean.Normalize(Text(story.Find("li.pub_date").First())),
		}
		if m := csmsNumber.FindStringSubmatch(item.Title); m != nil {
			item.ID = m[1]
		}
		if item.Validate() != nil {
			return
		}
		items = append(items, item)
	})

	return items, nil
}
