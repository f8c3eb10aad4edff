package mock

import (
	"context"

	"github.com/fwojciec/pagedigest"
)

var _ pagedigest.KeywordExtractor = (*KeywordExtractor)(nil)

// KeywordExtractor is a mock implementation of pagedigest.KeywordExtractor.
type KeywordExtractor struct {
	KeywordsFn func(ctx context.Context, text string, topK int) ([]string, error)
}

func (k *KeywordExtractor) Keywords(ctx context.Context, text string, topK int) ([]string, error) {
	return k.KeywordsFn(ctx, text, topK)
}

var _ pagedigest.EntityExtractor = (*EntityExtractor)(nil)

// EntityExtractor is a mock implementation of pagedigest.EntityExtractor.
type EntityExtractor struct {
	EntitiesFn func(ctx context.Context, text string) (pagedigest.Entities, error)
}

func (e *EntityExtractor) Entities(ctx context.Context, text string) (pagedigest.Entities, error) {
	return e.EntitiesFn(ctx, text)
}
