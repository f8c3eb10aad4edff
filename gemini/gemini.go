// Package gemini implements the model tier of keyword and entity
// extraction using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/pagedigest"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// generateJSON sends prompt with config and returns the JSON text of the
// first candidate.
func generateJSON(ctx context.Context, client *genai.Client, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if client == nil {
		return "", pagedigest.Errorf(pagedigest.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", pagedigest.Errorf(pagedigest.EINTERNAL, "gemini returned nil result")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", pagedigest.Errorf(pagedigest.EINTERNAL, "gemini returned empty response")
	}
	return text, nil
}

func systemInstruction(text string) *genai.Content {
	return &genai.Content{
		Parts: []*genai.Part{{Text: text}},
	}
}
