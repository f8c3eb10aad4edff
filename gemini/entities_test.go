package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityExtractor_Entities_ReturnsUnavailableWithoutClient(t *testing.T) {
	t.Parallel()

	e := gemini.NewEntityExtractor(nil)

	_, err := e.Entities(context.Background(), "The Department of Commerce")

	require.Error(t, err)
	assert.Equal(t, pagedigest.EUNAVAILABLE, pagedigest.ErrorCode(err))
}

func TestBuildEntityConfig_RequestsJSON(t *testing.T) {
	t.Parallel()

	config := gemini.BuildEntityConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Contains(t, config.ResponseSchema.Properties, "entities")
	require.NotNil(t, config.SystemInstruction)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "PERSON")
}

func TestBuildEntityPrompt_ContainsText(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildEntityPrompt("Jane Smith visited Ottawa.")

	assert.Contains(t, prompt, "Jane Smith visited Ottawa.")
	assert.NotContains(t, prompt, "named entity recognizer")
}

func TestParseEntities(t *testing.T) {
	t.Parallel()

	t.Run("maps labels to categories", func(t *testing.T) {
		t.Parallel()

		raw := `{"entities":[
			{"text":"CBP","label":"ORG"},
			{"text":"Jane Smith","label":"PERSON"},
			{"text":"Canada","label":"GPE"},
			{"text":"Gulf of Mexico","label":"LOC"},
			{"text":"Section 232","label":"LAW"}
		]}`

		ents, err := gemini.ParseEntities(raw)

		require.NoError(t, err)
		assert.Equal(t, []string{"CBP"}, ents.Orgs)
		assert.Equal(t, []string{"Jane Smith"}, ents.People)
		assert.Equal(t, []string{"Canada", "Gulf of Mexico"}, ents.Locations)
		assert.Equal(t, []string{"Section 232"}, ents.Other)
	})

	t.Run("drops duplicates and blank text", func(t *testing.T) {
		t.Parallel()

		raw := `{"entities":[
			{"text":"Canada","label":"GPE"},
			{"text":"Canada","label":"LOC"},
			{"text":" ","label":"ORG"}
		]}`

		ents, err := gemini.ParseEntities(raw)

		require.NoError(t, err)
		assert.Equal(t, []string{"Canada"}, ents.Locations)
		assert.Empty(t, ents.Orgs)
	})

	t.Run("rejects malformed responses", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseEntities("{")

		require.Error(t, err)
		assert.Equal(t, pagedigest.EINTERNAL, pagedigest.ErrorCode(err))
	})
}
