package mock

import "github.com/fwojciec/pagedigest"

var _ pagedigest.AdapterRegistry = (*AdapterRegistry)(nil)

// AdapterRegistry is a mock implementation of pagedigest.AdapterRegistry.
type AdapterRegistry struct {
	LookupFn func(url string) (*pagedigest.Adapter, bool)
}

func (r *AdapterRegistry) Lookup(url string) (*pagedigest.Adapter, bool) {
	return r.LookupFn(url)
}
