package http_test

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/pagedigest"
	pdhttp "github.com/fwojciec/pagedigest/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFederalRegisterURL(t *testing.T) {
	t.Parallel()

	raw := pdhttp.FederalRegisterURL(pdhttp.FederalRegisterEndpoint, "Tariff Rates", 5)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.federalregister.gov", u.Host)
	assert.Equal(t, "/api/v1/documents.json", u.Path)
	assert.Equal(t, "5", u.Query().Get("per_page"))
	assert.Equal(t, "newest", u.Query().Get("order"))
	assert.Equal(t, "Tariff Rates", u.Query().Get("conditions[term]"))
}

func TestParseFederalRegister(t *testing.T) {
	t.Parallel()

	t.Run("maps five results verbatim", func(t *testing.T) {
		t.Parallel()

		var results []string
		for i := 1; i <= 5; i++ {
			results = append(results, fmt.Sprintf(
				`{"title":"Notice %d","publication_date":"2025-10-0%d","html_url":"https://www.federalregister.gov/d/%d","document_number":"2025-%d"}`,
				i, i, i, i))
		}
		raw := `{"count":5,"results":[` + strings.Join(results, ",") + `]}`

		items, err := pdhttp.ParseFederalRegister(raw, 5)

		require.NoError(t, err)
		require.Len(t, items, 5)
		for i, item := range items {
			n := i + 1
			assert.Equal(t, fmt.Sprintf("Notice %d", n), item.Title)
			assert.Equal(t, fmt.Sprintf("2025-10-0%d", n), item.Date)
			assert.Equal(t, fmt.Sprintf("https://www.federalregister.gov/d/%d", n), item.Link)
			assert.Equal(t, fmt.Sprintf("2025-%d", n), item.ID)
		}
	})

	t.Run("skips results without title or date", func(t *testing.T) {
		t.Parallel()

		raw := `{"results":[
			{"title":"","publication_date":"2025-10-01","html_url":"https://a"},
			{"title":"No date","html_url":"https://b"},
			{"title":"Kept","publication_date":"2025-10-03","html_url":"https://c"}
		]}`

		items, err := pdhttp.ParseFederalRegister(raw, 5)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Kept", items[0].Title)
	})

	t.Run("caps results at top n", func(t *testing.T) {
		t.Parallel()

		raw := `{"results":[
			{"title":"One","publication_date":"2025-10-01"},
			{"title":"Two","publication_date":"2025-10-02"},
			{"title":"Three","publication_date":"2025-10-03"}
		]}`

		items, err := pdhttp.ParseFederalRegister(raw, 2)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("returns nothing for missing results", func(t *testing.T) {
		t.Parallel()

		items, err := pdhttp.ParseFederalRegister(`{"count":0}`, 5)

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := pdhttp.ParseFederalRegister(`<html>`, 5)

		require.Error(t, err)
		assert.Equal(t, pagedigest.EINVALID, pagedigest.ErrorCode(err))
	})
}
