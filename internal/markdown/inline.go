package markdown

import "regexp"

// boldRun matches a non-greedy **...** run. Unbalanced markers fall through
// as literal text.
var boldRun = regexp.MustCompile(`\*\*(.*?)\*\*`)

// scanInline splits text into plain and bold spans.
func scanInline(text string) []Span {
	var spans []Span
	last := 0

	for _, m := range boldRun.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]]})
		}
		if inner := text[m[2]:m[3]]; inner != "" {
			spans = append(spans, Span{Text: inner, Bold: true})
		}
		last = m[1]
	}

	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}

	return spans
}
