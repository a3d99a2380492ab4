package models

// SentinelSpeaker marks "no speaker assigned yet". It must never appear in
// output segments.
const SentinelSpeaker = -1

// WordToken is one word of diarized transcription output. Chronological
// ordering is the only guarantee the transcription service gives.
type WordToken struct {
	Text       string `json:"word"`
	SpeakerTag int    `json:"speakerTag"`
}

// TranscriptSegment is a maximal run of consecutive WordTokens sharing the
// same speaker tag. No two adjacent segments share a tag.
type TranscriptSegment struct {
	SpeakerTag int    `json:"speakerTag"`
	Text       string `json:"text"`
}

// Role classifies a meeting participant.
type Role string

const (
	RoleClient   Role = "Client"
	RoleInternal Role = "Internal"
)

// ParticipantHint maps a real name to a meeting role. Hints are parsed from
// free-text lines of the form "Name (RoleTag)".
type ParticipantHint struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
