// Package markdown parses the constrained markdown dialect emitted by the
// note extractor into a structural document tree and renders it into target
// document representations. The parser is line-oriented and depends on no
// concrete document library.
package markdown

// Span is one inline run of text.
type Span struct {
	Text string
	Bold bool
}

// Cell is the span sequence of one table cell.
type Cell []Span

// Node is one structural element of a parsed document.
type Node interface {
	node()
}

// Heading is a "##"-prefixed line.
type Heading struct {
	Text  string
	Level int
}

// Bullet is a "*"- or "-"-prefixed line. A leading "**Label:**" prefix is
// split into a bold label span followed by the plain remainder.
type Bullet struct {
	Spans []Span
}

// Paragraph is any other non-blank line.
type Paragraph struct {
	Spans []Span
}

// Table is a run of pipe-delimited rows. Row lengths may differ; renderers
// pad short rows to the widest row with empty cells.
type Table struct {
	Rows [][]Cell
}

func (Heading) node()   {}
func (Bullet) node()    {}
func (Paragraph) node() {}
func (Table) node()     {}

// Width returns the widest row length.
func (t Table) Width() int {
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
