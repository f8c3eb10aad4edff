package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/pagedigest"
	"google.golang.org/genai"
)

// Ensure EntityExtractor implements pagedigest.EntityExtractor at compile time.
var _ pagedigest.EntityExtractor = (*EntityExtractor)(nil)

// Entity labels understood by ParseEntities.
const (
	LabelOrg      = "ORG"
	LabelPerson   = "PERSON"
	LabelGPE      = "GPE"
	LabelLocation = "LOC"
)

// EntityExtractor recognizes named entities with Gemini.
type EntityExtractor struct {
	client *genai.Client
	model  string
}

// NewEntityExtractor creates a new EntityExtractor using DefaultModel.
func NewEntityExtractor(client *genai.Client) *EntityExtractor {
	return &EntityExtractor{client: client, model: DefaultModel}
}

// Entities returns the entities found in text grouped by category.
func (e *EntityExtractor) Entities(ctx context.Context, text string) (pagedigest.Entities, error) {
	if strings.TrimSpace(text) == "" {
		return pagedigest.Entities{}, nil
	}

	raw, err := generateJSON(ctx, e.client, e.model, BuildEntityPrompt(text), BuildEntityConfig())
	if err != nil {
		return pagedigest.Entities{}, err
	}

	return ParseEntities(raw)
}

// BuildEntityConfig returns the GenerateContentConfig for entity requests.
func BuildEntityConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(
			"You are a named entity recognizer. Label organizations ORG, people PERSON, " +
				"countries, states and cities GPE, other locations LOC, and anything else MISC. " +
				"Copy entity text exactly as it appears.",
		),
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"entities": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"text":  {Type: genai.TypeString},
							"label": {Type: genai.TypeString},
						},
						Required: []string{"text", "label"},
					},
				},
			},
			Required: []string{"entities"},
		},
	}
}

// BuildEntityPrompt builds the user prompt for an entity request.
func BuildEntityPrompt(text string) string {
	return "List the named entities in the text.\n\n<text>\n" + text + "\n</text>"
}

type entityResponse struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	} `json:"entities"`
}

// ParseEntities decodes an entity response. ORG maps to orgs, PERSON to
// people, GPE and LOC to locations and any other label to other.
// Duplicates within a category are dropped.
func ParseEntities(raw string) (pagedigest.Entities, error) {
	var resp entityResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return pagedigest.Entities{}, pagedigest.Errorf(pagedigest.EINTERNAL, "invalid entity response: %v", err)
	}

	var ents pagedigest.Entities
	seen := make(map[string]bool)
	for _, e := range resp.Entities {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}

		category, bucket := classify(&ents, e.Label)
		key := category + "\x00" + text
		if seen[key] {
			continue
		}
		seen[key] = true
		*bucket = append(*bucket, text)
	}
	return ents, nil
}

// classify returns the category name and the slice an entity with label
// belongs to.
func classify(ents *pagedigest.Entities, label string) (string, *[]string) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case LabelOrg:
		return "orgs", &ents.Orgs
	case LabelPerson:
		return "people", &ents.People
	case LabelGPE, LabelLocation:
		return "locations", &ents.Locations
	default:
		return "other", &ents.Other
	}
}
