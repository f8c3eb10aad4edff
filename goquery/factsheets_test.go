package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagedigest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const factSheetsHTML = `<html><body><div class="wp-block-query"><ul class="wp-block-post-template">
<li>
	<h2 class="wp-block-post-title"><a href="/fact-sheets/2025/10/one/">Fact Sheet: One</a></h2>
	<div><time datetime="2025-10-14">October 14, 2025</time></div>
</li>
<li>
	<a class="wp-block-post-title__link" href="https://www.whitehouse.gov/fact-sheets/2025/10/two/">Fact Sheet: Two</a>
	<p>Published September 30, 2025 by the press office</p>
</li>
<li>
	<h2 class="wp-block-post-title"><a href="/fact-sheets/undated/">Undated</a></h2>
</li>
<li>
	<h2 class="wp-block-post-title"><a href="/fact-sheets/2025/09/three/">Fact Sheet: Three</a></h2>
	<time>September 2, 2025</time>
</li>
</ul></div></body></html>`

func TestParseFactSheets(t *testing.T) {
	t.Parallel()

	t.Run("parses dated items", func(t *testing.T) {
		t.Parallel()

		items, err := goquery.ParseFactSheets(factSheetsHTML, "https://www.whitehouse.gov/", 12)

		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, "Fact Sheet: One", items[0].Title)
		assert.Equal(t, "October 14, 2025", items[0].Date)
		assert.Equal(t, "https://www.whitehouse.gov/fact-sheets/2025/10/one/", items[0].Link)

		assert.Equal(t, "Fact Sheet: Two", items[1].Title)
		assert.Equal(t, "September 30, 2025", items[1].Date)

		assert.Equal(t, "Fact Sheet: Three", items[2].Title)
	})

	t.Run("stops at the limit", func(t *testing.T) {
		t.Parallel()

		items, err := goquery.ParseFactSheets(factSheetsHTML, "https://www.whitehouse.gov/", 1)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Fact Sheet: One", items[0].Title)
	})
	t.Run("skips dated items with a blank title", func(t *testing.T) {
		t.Parallel()

		html := `<div class="wp-block-query"><ul class="wp-block-post-template">
<li><h2 class="wp-block-post-title"><a href="/fact-sheets/blank/">   </a></h2><time>October 1, 2025</time></li>
<li><a class="wp-block-post-title__link" href="/fact-sheets/empty/"></a><time>October 2, 2025</time></li>
<li><h2 class="wp-block-post-title"><a href="/fact-sheets/kept/">Kept</a></h2><time>October 3, 2025</time></li>
</ul></div>`

		items, err := goquery.ParseFactSheets(html, "https://www.whitehouse.gov/", 12)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Kept", items[0].Title)
		for _, item := range items {
			assert.NotEmpty(t, item.Title)
		}
	})
}
