package scrape_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchPrefix(prefix string) func(string) bool {
	return func(url string) bool { return strings.HasPrefix(url, prefix) }
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("returns the first matching adapter", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewRegistry(
			pagedigest.Adapter{Name: "specific", Match: matchPrefix("https://example.com/feed")},
			pagedigest.Adapter{Name: "broad", Match: matchPrefix("https://example.com")},
		)

		a, ok := r.Lookup("https://example.com/feed/latest")

		require.True(t, ok)
		assert.Equal(t, "specific", a.Name)
	})

	t.Run("reports no match for other URLs", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewRegistry(pagedigest.Adapter{Name: "feed", Match: matchPrefix("https://example.com/feed")})

		a, ok := r.Lookup("https://other.example.org/")

		assert.False(t, ok)
		assert.Nil(t, a)
	})

	t.Run("lists adapters in priority order", func(t *testing.T) {
		t.Parallel()

		r := scrape.NewRegistry(pagedigest.Adapter{Name: "first", Match: matchPrefix("a")})
		r.Register(pagedigest.Adapter{Name: "second", Match: matchPrefix("b")})

		assert.Equal(t, []string{"first", "second"}, r.List())
	})
}
