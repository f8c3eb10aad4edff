package pagedigest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pagedigest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Announcements(t *testing.T) {
	t.Parallel()

	t.Run("passes fetched content to the parser", func(t *testing.T) {
		t.Parallel()

		a := pagedigest.Adapter{
			Name:  "feed",
			Fetch: func(context.Context) (string, error) { return "raw", nil },
			Parse: func(raw string) ([]pagedigest.Announcement, error) {
				return []pagedigest.Announcement{{Title: raw}}, nil
			},
		}

		items, err := a.Announcements(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []pagedigest.Announcement{{Title: "raw"}}, items)
	})

	t.Run("names the adapter and stage in fetch errors", func(t *testing.T) {
		t.Parallel()

		cause := pagedigest.Errorf(pagedigest.EUNAVAILABLE, "connection refused")
		a := pagedigest.Adapter{
			Name:  "feed",
			Fetch: func(context.Context) (string, error) { return "", cause },
			Parse: func(string) ([]pagedigest.Announcement, error) {
				t.Fatal("parse should not run")
				return nil, nil
			},
		}

		_, err := a.Announcements(context.Background())

		assert.EqualError(t, err, "feed: fetch: connection refused")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, pagedigest.EUNAVAILABLE, pagedigest.ErrorCode(err))
	})

	t.Run("names the adapter and stage in parse errors", func(t *testing.T) {
		t.Parallel()

		a := pagedigest.Adapter{
			Name:  "feed",
			Fetch: func(context.Context) (string, error) { return "{", nil },
			Parse: func(string) ([]pagedigest.Announcement, error) {
				return nil, errors.New("unexpected end of JSON input")
			},
		}

		_, err := a.Announcements(context.Background())

		assert.EqualError(t, err, "feed: parse: unexpected end of JSON input")
	})
}
