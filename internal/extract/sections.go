package extract

import (
	"regexp"
	"sort"
	"strings"

	"meeting-minutes/internal/models"
)

// Section markers the generation prompt demands. Splitting tolerates any
// marker order, missing markers, and case/whitespace drift on the marker
// itself.
const (
	markerOverview       = "OVERVIEW"
	markerDiscussion     = "DISCUSSION"
	markerNextSteps      = "NEXT STEPS"
	markerClientRequests = "CLIENT REQUESTS"
)

// markerPattern matches "## NAME ##" with flexible case and spacing.
var markerPattern = regexp.MustCompile(`(?i)##\s*(OVERVIEW|DISCUSSION|NEXT\s+STEPS|CLIENT\s+REQUESTS)\s*##`)

type markerHit struct {
	name       string
	start, end int
}

// SplitSections divides a generated response into the four fixed note
// fields. It is total: it never fails, and when no markers are present at
// all the entire response lands in Discussion rather than being dropped.
func SplitSections(text string) models.MeetingNotes {
	var notes models.MeetingNotes

	hits := findMarkers(text)
	if len(hits) == 0 {
		notes.Discussion = strings.TrimSpace(text)
		return notes
	}

	for i, hit := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		content := strings.TrimSpace(text[hit.end:end])

		// last marker of a given name wins, matching first-to-last scan order
		switch hit.name {
		case markerOverview:
			notes.Overview = content
		case markerDiscussion:
			notes.Discussion = content
		case markerNextSteps:
			notes.NextSteps = content
		case markerClientRequests:
			notes.ClientRequests = content
		}
	}

	return notes
}

func findMarkers(text string) []markerHit {
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	hits := make([]markerHit, 0, len(matches))
	for _, m := range matches {
		name := strings.ToUpper(text[m[2]:m[3]])
		name = strings.Join(strings.Fields(name), " ")
		hits = append(hits, markerHit{name: name, start: m[0], end: m[1]})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	return hits
}
