// Package transcript converts diarized word tokens into speaker-segmented
// transcripts and parses participant hints.
package transcript

import (
	"fmt"
	"strings"

	"meeting-minutes/internal/models"
)

// Assemble groups an ordered token sequence into maximal same-speaker runs.
// The previous tag starts at the sentinel, so the first token always opens a
// new segment.
func Assemble(tokens []models.WordToken) []models.TranscriptSegment {
	var segments []models.TranscriptSegment
	current := models.SentinelSpeaker

	for _, tok := range tokens {
		if tok.SpeakerTag != current {
			current = tok.SpeakerTag
			segments = append(segments, models.TranscriptSegment{SpeakerTag: current})
		}
		last := &segments[len(segments)-1]
		if last.Text != "" {
			last.Text += " "
		}
		last.Text += tok.Text
	}

	return segments
}

// Flatten renders segments into the flat transcript form consumed by the
// note extractor: each segment appears as "\n\nSpeaker {tag}: {text} ".
func Flatten(segments []models.TranscriptSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "\n\nSpeaker %d: %s ", seg.SpeakerTag, seg.Text)
	}
	return b.String()
}

// FullTranscript assembles tokens and falls back to the non-diarized
// alternative transcripts when diarization produced nothing usable. The
// second return reports whether any speech was found at all.
func FullTranscript(tokens []models.WordToken, alternatives []string) (string, bool) {
	flat := Flatten(Assemble(tokens))
	if strings.TrimSpace(flat) != "" {
		return flat, true
	}

	joined := strings.TrimSpace(strings.Join(alternatives, " "))
	if joined == "" {
		return "", false
	}
	return joined, true
}
