package models

import "time"

// SessionRecord is the persisted snapshot of one analysis session. Records
// are never mutated in place; reloading replaces the in-memory session
// wholesale. The JSON layout is forward-compatible by convention: readers
// default missing keys rather than erroring.
type SessionRecord struct {
	Notes               MeetingNotes  `json:"ai_results"`
	ParticipantHintsRaw string        `json:"participants"`
	ChatHistory         []ChatMessage `json:"chat_history,omitempty"`
	CreatedAt           time.Time     `json:"date"`
	DetectedTitle       string        `json:"detected_title,omitempty"`
}
