package markdown

import (
	"fmt"
	"html"
	"strings"
)

// HTMLRenderer renders a document tree into rich-text HTML, the body shape
// accepted by the project-management service and a structurally faithful
// artifact format (headings, bullets, bold runs, tables).
type HTMLRenderer struct{}

// RenderFragment renders nodes without a surrounding document shell.
// Consecutive bullets are grouped into one list.
func (HTMLRenderer) RenderFragment(nodes []Node) string {
	var b strings.Builder
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, n := range nodes {
		switch v := n.(type) {
		case Bullet:
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			fmt.Fprintf(&b, "<li>%s</li>\n", renderSpans(v.Spans))
		case Heading:
			closeList()
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", v.Level, html.EscapeString(v.Text), v.Level)
		case Paragraph:
			closeList()
			fmt.Fprintf(&b, "<p>%s</p>\n", renderSpans(v.Spans))
		case Table:
			closeList()
			renderHTMLTable(&b, v)
		}
	}
	closeList()

	return b.String()
}

// RenderDocument wraps a fragment into a standalone HTML document.
func (r HTMLRenderer) RenderDocument(title string, nodes []Node) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(r.RenderFragment(nodes))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func renderHTMLTable(b *strings.Builder, t Table) {
	width := t.Width()
	b.WriteString("<table border=\"1\">\n")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for i := 0; i < width; i++ {
			// pad short rows to the widest row with empty cells
			if i < len(row) {
				fmt.Fprintf(b, "<td>%s</td>", renderSpans(row[i]))
			} else {
				b.WriteString("<td></td>")
			}
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}

func renderSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Bold {
			b.WriteString("<strong>")
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString("</strong>")
		} else {
			b.WriteString(html.EscapeString(s.Text))
		}
	}
	return b.String()
}
