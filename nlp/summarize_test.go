package nlp_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagedigest/nlp"
	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	t.Run("splits after terminal punctuation followed by space", func(t *testing.T) {
		t.Parallel()

		got := nlp.SplitSentences("First one. Second one!  Third one? Fourth")

		assert.Equal(t, []string{"First one.", "Second one!", "Third one?", "Fourth"}, got)
	})

	t.Run("does not split inside numbers or abbreviations without space", func(t *testing.T) {
		t.Parallel()

		got := nlp.SplitSentences("Rate is 2.5 percent under U.S.C. rules.")

		assert.Equal(t, []string{"Rate is 2.5 percent under U.S.C.", "rules."}, got)
	})

	t.Run("returns nothing for empty text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, nlp.SplitSentences(""))
		assert.Empty(t, nlp.SplitSentences("   "))
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("returns empty summary for empty input", func(t *testing.T) {
		t.Parallel()

		summary, points := nlp.Summarize("", []string{"tariff"}, 6)

		assert.Equal(t, "", summary)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})

	t.Run("keeps key points in original order", func(t *testing.T) {
		t.Parallel()

		text := "Weather was fine. New tariff on steel imports. Lunch was served. Tariff rates rise for steel."

		summary, points := nlp.Summarize(text, []string{"tariff", "steel"}, 2)

		assert.Equal(t, []string{"New tariff on steel imports.", "Tariff rates rise for steel."}, points)
		assert.Equal(t, "New tariff on steel imports. Tariff rates rise for steel.", summary)
	})

	t.Run("joins at most three key points into the summary", func(t *testing.T) {
		t.Parallel()

		text := "One a. Two b. Three c. Four d. Five e."

		summary, points := nlp.Summarize(text, nil, 6)

		assert.Len(t, points, 5)
		assert.Equal(t, "One a. Two b. Three c.", summary)
	})

	t.Run("prefers sentences near the ideal length", func(t *testing.T) {
		t.Parallel()

		long := strings.TrimSpace(strings.Repeat("word ", 36)) + "."
		text := "Short. " + long

		_, points := nlp.Summarize(text, nil, 1)

		assert.Equal(t, []string{long}, points)
	})

	t.Run("scores only the first 250 sentences", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("Filler text here. ", 250) + "Tariff tariff tariff."

		_, points := nlp.Summarize(text, []string{"tariff"}, 6)

		assert.NotContains(t, points, "Tariff tariff tariff.")
	})
}
