package pagedigest

// TableRenderer renders announcements as plain text for analysis.
type TableRenderer interface {
	// RenderTable returns a two-column Markdown table (date, announcement)
	// with one row per announcement, in input order.
	RenderTable(announcements []Announcement) (string, error)
}
