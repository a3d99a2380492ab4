package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		overview string
		disc     string
		next     string
		client   string
	}{
		{
			name: "all four sections",
			text: "## OVERVIEW ##\nShort summary\n## DISCUSSION ##\nTalked things\n## NEXT STEPS ##\n* do it\n## CLIENT REQUESTS ##\nNone noted",
			overview: "Short summary",
			disc:     "Talked things",
			next:     "* do it",
			client:   "None noted",
		},
		{
			name: "subset of markers",
			text: "## DISCUSSION ##\nA\n## NEXT STEPS ##\nB",
			disc: "A",
			next: "B",
		},
		{
			name: "markers out of order",
			text: "## NEXT STEPS ##\nlater\n## OVERVIEW ##\nfirst",
			next: "later",
			overview: "first",
		},
		{
			name: "no markers at all lands in discussion",
			text: "  The model ignored the format entirely.  ",
			disc: "The model ignored the format entirely.",
		},
		{
			name: "case and spacing drift tolerated",
			text: "##overview##\nA\n##  Next   Steps ##\nB",
			overview: "A",
			next:     "B",
		},
		{
			name: "duplicate marker keeps the last occurrence",
			text: "## OVERVIEW ##\nfirst\n## OVERVIEW ##\nsecond",
			overview: "second",
		},
		{
			name: "empty input",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := SplitSections(tt.text)
			assert.Equal(t, tt.overview, notes.Overview)
			assert.Equal(t, tt.disc, notes.Discussion)
			assert.Equal(t, tt.next, notes.NextSteps)
			assert.Equal(t, tt.client, notes.ClientRequests)
			assert.Empty(t, notes.FullTranscript, "splitting never touches the transcript")
		})
	}
}
