package nlp

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/pagedigest"
)

// DefaultTopKeywords is the number of keywords kept per page.
const DefaultTopKeywords = 12

var (
	_ pagedigest.KeywordExtractor = FrequencyKeywords{}
	_ pagedigest.KeywordExtractor = (*KeywordChain)(nil)
)

var wordPattern = regexp.MustCompile(`[a-z][a-z-]{2,}`)

// FrequencyKeywords ranks lowercase words of three or more letters by
// frequency, excluding stop words. Ties keep first-seen order.
// It never fails and is the fallback of every keyword chain.
type FrequencyKeywords struct{}

// Keywords returns at most topK words, most frequent first.
func (FrequencyKeywords) Keywords(_ context.Context, text string, topK int) ([]string, error) {
	return frequencyKeywords(text, topK), nil
}

func frequencyKeywords(text string, topK int) []string {
	if text == "" {
		return []string{}
	}

	var order []string
	freq := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if IsStopword(w) {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if topK >= 0 && len(order) > topK {
		order = order[:topK]
	}
	if order == nil {
		return []string{}
	}
	return order
}

// KeywordChain prefers Primary and falls back to frequency ranking when
// Primary is nil or returns an error.
type KeywordChain struct {
	Primary pagedigest.KeywordExtractor
	Logger  *slog.Logger
}

// Keywords returns at most topK keywords.
func (c *KeywordChain) Keywords(ctx context.Context, text string, topK int) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}

	if c.Primary != nil {
		kws, err := c.Primary.Keywords(ctx, text, topK)
		if err == nil {
			if topK >= 0 && len(kws) > topK {
				kws = kws[:topK]
			}
			return kws, nil
		}
		if c.Logger != nil {
			c.Logger.Warn("keyword extractor failed, using frequency fallback", "err", err)
		}
	}

	return frequencyKeywords(text, topK), nil
}
