package markdown

import (
	"strings"
)

// TextRenderer renders a document tree as plain text, used for table cells
// of the minutes template where only the structure survives.
type TextRenderer struct{}

func (TextRenderer) Render(nodes []Node) string {
	var lines []string

	for _, n := range nodes {
		switch v := n.(type) {
		case Heading:
			lines = append(lines, strings.ToUpper(v.Text))
		case Bullet:
			lines = append(lines, "• "+spanText(v.Spans))
		case Paragraph:
			lines = append(lines, spanText(v.Spans))
		case Table:
			lines = append(lines, renderTextTable(v)...)
		}
	}

	return strings.Join(lines, "\n")
}

func renderTextTable(t Table) []string {
	width := t.Width()
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, width)
		for i := 0; i < width; i++ {
			if i < len(row) {
				cells[i] = spanText(row[i])
			}
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return lines
}

func spanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
