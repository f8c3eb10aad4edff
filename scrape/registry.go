package scrape

import "github.com/fwojciec/pagedigest"

// Ensure Registry implements pagedigest.AdapterRegistry at compile time.
var _ pagedigest.AdapterRegistry = (*Registry)(nil)

// Registry holds adapters in priority order. The first adapter whose Match
// accepts a URL wins.
//
// Registry is not safe for concurrent registration; register every adapter
// before scraping.
type Registry struct {
	adapters []pagedigest.Adapter
}

// NewRegistry creates a Registry holding adapters in the given order.
func NewRegistry(adapters ...pagedigest.Adapter) *Registry {
	r := &Registry{}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Lookup returns the first adapter whose Match accepts url.
func (r *Registry) Lookup(url string) (*pagedigest.Adapter, bool) {
	for i := range r.adapters {
		if r.adapters[i].Match(url) {
			return &r.adapters[i], true
		}
	}
	return nil, false
}

// Register appends an adapter with the lowest priority.
func (r *Registry) Register(adapter pagedigest.Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// List returns adapter names in priority order.
func (r *Registry) List() []string {
	names := make([]string, len(r.adapters))
	for i, a := range r.adapters {
		names[i] = a.Name
	}
	return names
}
