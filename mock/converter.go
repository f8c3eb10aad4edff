package mock

import "github.com/fwojciec/pagedigest"

var _ pagedigest.TableRenderer = (*TableRenderer)(nil)

// TableRenderer is a mock implementation of pagedigest.TableRenderer.
type TableRenderer struct {
	RenderTableFn func(announcements []pagedigest.Announcement) (string, error)
}

func (r *TableRenderer) RenderTable(announcements []pagedigest.Announcement) (string, error) {
	return r.RenderTableFn(announcements)
}
