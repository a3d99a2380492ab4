package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLRenderer_GroupsConsecutiveBullets(t *testing.T) {
	out := HTMLRenderer{}.RenderFragment(Parse("* one\n* two\nbreak\n* three"))

	assert.Equal(t,
		"<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n<p>break</p>\n<ul>\n<li>three</li>\n</ul>\n",
		out)
}

func TestHTMLRenderer_BoldAndEscaping(t *testing.T) {
	out := HTMLRenderer{}.RenderFragment(Parse("* **Bob:** a < b"))
	assert.Contains(t, out, "<li><strong>Bob:</strong>a &lt; b</li>")
}

func TestHTMLRenderer_TablePadsShortRows(t *testing.T) {
	out := HTMLRenderer{}.RenderFragment(Parse("|A|B|C|\n|1|2|"))

	assert.Contains(t, out, "<tr><td><strong>A</strong></td><td><strong>B</strong></td><td><strong>C</strong></td></tr>")
	assert.Contains(t, out, "<tr><td>1</td><td>2</td><td></td></tr>")
}

func TestHTMLRenderer_Heading(t *testing.T) {
	out := HTMLRenderer{}.RenderFragment(Parse("## Topics ##"))
	assert.Equal(t, "<h2>Topics</h2>\n", out)
}

func TestHTMLRenderer_RenderDocument(t *testing.T) {
	out := HTMLRenderer{}.RenderDocument("Weekly Sync", Parse("hello"))

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Weekly Sync</title>")
	assert.Contains(t, out, "<p>hello</p>")
	assert.Contains(t, out, "</html>")
}

func TestTextRenderer(t *testing.T) {
	out := TextRenderer{}.Render(Parse("## Plan ##\n* **Ann:** ship it\n|A|B|\n|1|2|"))

	assert.Contains(t, out, "PLAN")
	assert.Contains(t, out, "• Ann:ship it")
	assert.Contains(t, out, "A | B")
	assert.Contains(t, out, "1 | 2")
}
