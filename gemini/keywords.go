package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/pagedigest"
	"google.golang.org/genai"
)

// Ensure KeywordExtractor implements pagedigest.KeywordExtractor at compile time.
var _ pagedigest.KeywordExtractor = (*KeywordExtractor)(nil)

// KeywordExtractor ranks single-word keywords with Gemini.
type KeywordExtractor struct {
	client *genai.Client
	model  string
}

// NewKeywordExtractor creates a new KeywordExtractor using DefaultModel.
func NewKeywordExtractor(client *genai.Client) *KeywordExtractor {
	return &KeywordExtractor{client: client, model: DefaultModel}
}

// Keywords returns at most topK lowercase single-word keywords, most
// relevant first.
func (k *KeywordExtractor) Keywords(ctx context.Context, text string, topK int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	raw, err := generateJSON(ctx, k.client, k.model, BuildKeywordPrompt(text, topK), BuildKeywordConfig())
	if err != nil {
		return nil, err
	}

	return ParseKeywords(raw, topK)
}

// BuildKeywordConfig returns the GenerateContentConfig for keyword requests.
func BuildKeywordConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(
			"You extract keywords from trade and customs announcements. " +
				"Return single words only. Score each keyword from 0 to 1 where lower means more relevant.",
		),
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"keywords": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"term":  {Type: genai.TypeString},
							"score": {Type: genai.TypeNumber},
						},
						Required: []string{"term", "score"},
					},
				},
			},
			Required: []string{"keywords"},
		},
	}
}

// BuildKeywordPrompt builds the user prompt for a keyword request.
func BuildKeywordPrompt(text string, topK int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Extract the %d most relevant single-word keywords from the text.\n\n", topK)
	sb.WriteString("<text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</text>")
	return sb.String()
}

type keywordResponse struct {
	Keywords []struct {
		Term  string  `json:"term"`
		Score float64 `json:"score"`
	} `json:"keywords"`
}

// ParseKeywords decodes a keyword response. Terms are lowercased, ranked
// by ascending score and deduplicated; multi-word terms are dropped.
func ParseKeywords(raw string, topK int) ([]string, error) {
	var resp keywordResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, pagedigest.Errorf(pagedigest.EINTERNAL, "invalid keyword response: %v", err)
	}

	kws := resp.Keywords
	sort.SliceStable(kws, func(i, j int) bool {
		return kws[i].Score < kws[j].Score
	})

	seen := make(map[string]bool, len(kws))
	out := []string{}
	for _, kw := range kws {
		term := strings.ToLower(strings.TrimSpace(kw.Term))
		if term == "" || strings.ContainsAny(term, " \t\n") || seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
		if topK > 0 && len(out) == topK {
			break
		}
	}
	return out, nil
}
