package markdown

import (
	"regexp"
	"strings"
)

var (
	tableRow = regexp.MustCompile(`^\|(.+)\|$`)
	tableSep = regexp.MustCompile(`^\|[-:| ]+\|$`)

	// labeledAction matches the distinguished "**Name:** action" bullet shape
	// used for next-step entries attributed to a person.
	labeledAction = regexp.MustCompile(`^\*\*([^*]+?:)\*\*\s*(.*)$`)
)

// Parse compiles the constrained dialect into a document tree. It never
// fails: anything unrecognized becomes a paragraph, blank lines are skipped.
func Parse(text string) []Node {
	var nodes []Node
	var pending [][]Cell

	flush := func() {
		if len(pending) == 0 {
			return
		}
		nodes = append(nodes, Table{Rows: pending})
		pending = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if tableRow.MatchString(line) {
			if !tableSep.MatchString(line) {
				pending = append(pending, splitRow(line, len(pending) == 0))
			}
			continue
		}
		flush()

		switch {
		case line == "":
			// skip
		case strings.HasPrefix(line, "##"):
			nodes = append(nodes, Heading{Text: headingText(line), Level: 2})
		case strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-"):
			nodes = append(nodes, Bullet{Spans: bulletSpans(line)})
		default:
			nodes = append(nodes, Paragraph{Spans: scanInline(line)})
		}
	}
	flush()

	return nodes
}

// headingText trims marker symbols and whitespace from both ends, so
// "## Title ##" and "## Title" both yield "Title".
func headingText(line string) string {
	return strings.Trim(line, "# \t")
}

// bulletSpans strips the single bullet marker, then splits a labeled-action
// prefix into a bold label and plain remainder, or falls back to the shared
// inline scanner.
func bulletSpans(line string) []Span {
	rest := strings.TrimSpace(line[1:])

	if m := labeledAction.FindStringSubmatch(rest); m != nil {
		spans := []Span{{Text: m[1], Bold: true}}
		if m[2] != "" {
			spans = append(spans, Span{Text: m[2]})
		}
		return spans
	}

	return scanInline(rest)
}

// splitRow breaks "|a|b|" into cells. Cells of the first accumulated row are
// forced bold per the header-row convention.
func splitRow(line string, header bool) []Cell {
	trimmed := strings.Trim(line, "|")
	parts := strings.Split(trimmed, "|")

	cells := make([]Cell, 0, len(parts))
	for _, part := range parts {
		spans := scanInline(strings.TrimSpace(part))
		if header {
			for i := range spans {
				spans[i].Bold = true
			}
		}
		cells = append(cells, Cell(spans))
	}
	return cells
}
