package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Headings(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"plain heading", "## Budget Review", "Budget Review"},
		{"trailing markers trimmed", "## Budget Review ##", "Budget Review"},
		{"extra hashes", "### Deep Dive", "Deep Dive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.line)
			require.Len(t, nodes, 1)
			assert.Equal(t, Heading{Text: tt.expected, Level: 2}, nodes[0])
		})
	}
}

func TestParse_LabeledActionBullet(t *testing.T) {
	nodes := Parse("* **Bob:** Send deck - Deadline: Friday")
	require.Len(t, nodes, 1)

	bullet, ok := nodes[0].(Bullet)
	require.True(t, ok)
	require.Len(t, bullet.Spans, 2)
	assert.Equal(t, Span{Text: "Bob:", Bold: true}, bullet.Spans[0])
	assert.Equal(t, Span{Text: "Send deck - Deadline: Friday"}, bullet.Spans[1])
}

func TestParse_PlainBullets(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []Span
	}{
		{"dash marker", "- agreed on scope", []Span{{Text: "agreed on scope"}}},
		{"star marker", "* agreed on scope", []Span{{Text: "agreed on scope"}}},
		{
			"inline bold without label shape",
			"* discussed **budget** limits",
			[]Span{{Text: "discussed "}, {Text: "budget", Bold: true}, {Text: " limits"}},
		},
		{
			"label with empty remainder",
			"* **Bob:**",
			[]Span{{Text: "Bob:", Bold: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.line)
			require.Len(t, nodes, 1)
			bullet, ok := nodes[0].(Bullet)
			require.True(t, ok)
			assert.Equal(t, tt.expected, bullet.Spans)
		})
	}
}

func TestParse_Table(t *testing.T) {
	nodes := Parse("|A|B|\n|-|-|\n|1|2|")
	require.Len(t, nodes, 1)

	table, ok := nodes[0].(Table)
	require.True(t, ok)
	require.Len(t, table.Rows, 2, "separator row must be dropped")

	// header row cells are forced bold
	for _, cell := range table.Rows[0] {
		for _, span := range cell {
			assert.True(t, span.Bold)
		}
	}
	assert.Equal(t, Cell{{Text: "A", Bold: true}}, table.Rows[0][0])
	assert.Equal(t, Cell{{Text: "1"}}, table.Rows[1][0])
}

func TestParse_RaggedTableKeptAsIs(t *testing.T) {
	nodes := Parse("|A|B|C|\n|1|2|")
	require.Len(t, nodes, 1)

	table := nodes[0].(Table)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], 3)
	assert.Len(t, table.Rows[1], 2)
	assert.Equal(t, 3, table.Width())
}

func TestParse_TableFlushedByNonRowLine(t *testing.T) {
	nodes := Parse("|A|B|\nafterwards")
	require.Len(t, nodes, 2)
	assert.IsType(t, Table{}, nodes[0])
	assert.IsType(t, Paragraph{}, nodes[1])
}

func TestParse_MixedDocument(t *testing.T) {
	text := "## Decisions ##\n\n* **Ann:** Own rollout\nPlain closing remark"
	nodes := Parse(text)

	require.Len(t, nodes, 3)
	assert.Equal(t, Heading{Text: "Decisions", Level: 2}, nodes[0])
	assert.IsType(t, Bullet{}, nodes[1])
	assert.Equal(t, Paragraph{Spans: []Span{{Text: "Plain closing remark"}}}, nodes[2])
}

func TestParse_BlankInputYieldsNothing(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n  \n"))
}

func TestScanInline(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Span
	}{
		{"no markers", "plain", []Span{{Text: "plain"}}},
		{"single bold run", "**x**", []Span{{Text: "x", Bold: true}}},
		{
			"bold in the middle",
			"a **b** c",
			[]Span{{Text: "a "}, {Text: "b", Bold: true}, {Text: " c"}},
		},
		{"unbalanced markers stay literal", "a **b", []Span{{Text: "a **b"}}},
		{"empty bold run skipped", "a ****b", []Span{{Text: "a "}, {Text: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scanInline(tt.text))
		})
	}
}
