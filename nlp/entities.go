package nlp

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagedigest"
)

const (
	// MaxModelInput is the number of characters passed to an entity model.
	MaxModelInput = 200000

	// maxModelEntities caps each category produced by an entity model.
	maxModelEntities = 20

	// maxRegexCandidates bounds the candidate pool of RegexEntities.
	maxRegexCandidates = 1200

	maxRegexOrgs  = 20
	maxRegexOther = 25
)

var (
	_ pagedigest.EntityExtractor = RegexEntities{}
	_ pagedigest.EntityExtractor = (*EntityChain)(nil)
)

var capitalizedRun = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,4})\b`)

// orgMarkers classify a capitalized run as an organization.
var orgMarkers = []string{
	"Department", "Agency", "Administration", "Commission", "Office",
	"U.S", "United States", "CBP", "White House", "Federal Register",
}

// RegexEntities finds runs of one to five capitalized words and buckets
// them into orgs or other. It cannot tell people from places, so People
// and Locations are always empty.
type RegexEntities struct{}

// Entities returns the sorted distinct candidates, at most 20 orgs and
// 25 others.
func (RegexEntities) Entities(_ context.Context, text string) (pagedigest.Entities, error) {
	return regexEntities(text), nil
}

func regexEntities(text string) pagedigest.Entities {
	var candidates []string
	for _, m := range capitalizedRun.FindAllStringSubmatch(text, -1) {
		c := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(c) < 4 {
			continue
		}
		candidates = append(candidates, c)
		if len(candidates) == maxRegexCandidates {
			break
		}
	}

	orgs := make(map[string]bool)
	other := make(map[string]bool)
	for _, c := range candidates {
		if isOrg(c) {
			orgs[c] = true
		} else {
			other[c] = true
		}
	}

	return pagedigest.Entities{
		Orgs:      sortedCapped(orgs, maxRegexOrgs),
		People:    []string{},
		Locations: []string{},
		Other:     sortedCapped(other, maxRegexOther),
	}
}

func isOrg(c string) bool {
	for _, m := range orgMarkers {
		if strings.Contains(c, m) {
			return true
		}
	}
	return false
}

// EntityChain prefers Model and falls back to RegexEntities when Model is
// nil or returns an error. Model input is truncated to MaxModelInput
// characters and each model category is deduplicated, sorted and capped
// at 20 entries.
type EntityChain struct {
	Model  pagedigest.EntityExtractor
	Logger *slog.Logger
}

// Entities returns the entities found in text.
func (c *EntityChain) Entities(ctx context.Context, text string) (pagedigest.Entities, error) {
	if c.Model != nil {
		ents, err := c.Model.Entities(ctx, truncateRunes(text, MaxModelInput))
		if err == nil {
			return pagedigest.Entities{
				Orgs:      capModel(ents.Orgs),
				People:    capModel(ents.People),
				Locations: capModel(ents.Locations),
				Other:     capModel(ents.Other),
			}, nil
		}
		if c.Logger != nil {
			c.Logger.Warn("entity model failed, using regex fallback", "err", err)
		}
	}
	return regexEntities(text), nil
}

func capModel(values []string) []string {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = true
		}
	}
	return sortedCapped(set, maxModelEntities)
}

func sortedCapped(set map[string]bool, limit int) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for j := range s {
		if i == n {
			return s[:j]
		}
		i++
	}
	return s
}
