package pagedigest

import (
	"context"
	"fmt"
)

// Adapter is a fetch and parse strategy for a known structured source.
// Adapters are values: the set is small and closed, so dispatch is a
// linear scan over an ordered list rather than an open type hierarchy.
type Adapter struct {
	// Name identifies the adapter in logs.
	Name string

	// Label is used as the page title of results produced by the adapter.
	Label string

	// Match reports whether the adapter handles url.
	Match func(url string) bool

	// Fetch retrieves the raw content (HTML or JSON) for the source.
	Fetch func(ctx context.Context) (string, error)

	// Parse turns raw content into announcements. Announcements without a
	// title are never returned.
	Parse func(raw string) ([]Announcement, error)
}

// Announcements fetches and parses the source.
func (a *Adapter) Announcements(ctx context.Context) ([]Announcement, error) {
	raw, err := a.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch: %w", a.Name, err)
	}
	items, err := a.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w", a.Name, err)
	}
	return items, nil
}

// AdapterRegistry holds adapters in priority order.
type AdapterRegistry interface {
	// Lookup returns the first adapter whose Match accepts url.
	// Returns false when the generic path should be used.
	Lookup(url string) (*Adapter, bool)
}
