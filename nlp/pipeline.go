// Package nlp implements offline text analysis: keyword ranking,
// extractive summarization and entity extraction, each with a heuristic
// fallback that is always available.
package nlp

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

// Analysis is the result of analyzing one page's main text.
type Analysis struct {
	Summary   string
	KeyPoints []string
	Keywords  []string
	Entities  pagedigest.Entities
}

// Pipeline runs keyword extraction, summarization and entity extraction.
// Nil extractors fall back to FrequencyKeywords and RegexEntities.
type Pipeline struct {
	Keywords pagedigest.KeywordExtractor
	Entities pagedigest.EntityExtractor
}

// Analyze analyzes text. Tabular text, such as rendered announcement
// tables, is too sparse for an entity model and always uses RegexEntities.
// Analyze never fails: extractor errors fall back to the heuristics.
func (p *Pipeline) Analyze(ctx context.Context, text string, tabular bool) Analysis {
	keywords := p.keywords(ctx, text)
	summary, points := Summarize(text, keywords, DefaultMaxSentences)

	return Analysis{
		Summary:   summary,
		KeyPoints: points,
		Keywords:  keywords,
		Entities:  p.entities(ctx, text, tabular),
	}
}

func (p *Pipeline) keywords(ctx context.Context, text string) []string {
	if p.Keywords != nil {
		if kws, err := p.Keywords.Keywords(ctx, text, DefaultTopKeywords); err == nil {
			return kws
		}
	}
	return frequencyKeywords(text, DefaultTopKeywords)
}

func (p *Pipeline) entities(ctx context.Context, text string, tabular bool) pagedigest.Entities {
	if !tabular && p.Entities != nil {
		if ents, err := p.Entities.Entities(ctx, text); err == nil {
			return ents
		}
	}
	return regexEntities(text)
}
