package htmltomarkdown

import (
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pagedigest"
	"github.com/fwojciec/pagedigest/clean"
)

// Ensure Converter implements pagedigest.TableRenderer at compile time.
var _ pagedigest.TableRenderer = (*Converter)(nil)

// emptyTable is returned when there are no announcements to render.
const emptyTable = "| Date | Announcement |\n|---|---|"

// Converter wraps html-to-markdown to render announcement tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter. Cell text is written as is, without
// Markdown escapes, and every cell gets one space of padding so rows read
// "| date | title |" under a "|---|---|" separator.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithEscapeMode(converter.EscapeModeDisabled),
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
	return &Converter{conv: conv}
}

// RenderTable renders announcements as a two-column Markdown table with a
// Date and an Announcement column, one row per announcement in input order.
func (c *Converter) RenderTable(announcements []pagedigest.Announcement) (string, error) {
	if len(announcements) == 0 {
		return emptyTable, nil
	}

	result, err := c.conv.ConvertString(tableHTML(announcements))
	if err != nil {
		return "", pagedigest.Errorf(pagedigest.EINTERNAL, "failed to render table: %v", err)
	}

	return strings.TrimSpace(result), nil
}

// tableHTML builds the HTML table that is converted to Markdown.
func tableHTML(announcements []pagedigest.Announcement) string {
	var b strings.Builder
	b.WriteString("<table><thead><tr><th>Date</th><th>Announcement</th></tr></thead><tbody>")
	for _, a := range announcements {
		b.WriteString("<tr><td>")
		b.WriteString(html.EscapeString(clean.Whitespace(a.Date)))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(clean.Whitespace(a.Title)))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
