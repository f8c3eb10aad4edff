package pagedigest

import "context"

// KeywordExtractor ranks the salient terms of a text.
type KeywordExtractor interface {
	// Keywords returns at most topK distinct lowercase terms, most salient first.
	Keywords(ctx context.Context, text string, topK int) ([]string, error)
}

// EntityExtractor recognizes named entities in a text.
type EntityExtractor interface {
	// Entities returns the distinct entities found in text, grouped by category.
	Entities(ctx context.Context, text string) (Entities, error)
}
