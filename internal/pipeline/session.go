// Package pipeline orchestrates the analysis flow from a recording to
// structured notes, and carries the per-session state the later stages
// (composition, publishing, chat) read from.
package pipeline

import (
	"context"
	"time"

	stderrors "meeting-minutes/internal/common/errors"
	"meeting-minutes/internal/models"
)

// Session is the in-memory state of one analyzed meeting. A session is
// created by a pipeline run or restored from the archive; restoring
// replaces the state wholesale, it never merges into an existing session.
type Session struct {
	Notes               models.MeetingNotes
	ParticipantHintsRaw string
	ChatHistory         []models.ChatMessage
	CreatedAt           time.Time
	DetectedTitle       string
}

// FromRecord builds a session from an archived record.
func FromRecord(record models.SessionRecord) *Session {
	s := &Session{
		Notes:               record.Notes,
		ParticipantHintsRaw: record.ParticipantHintsRaw,
		ChatHistory:         record.ChatHistory,
		CreatedAt:           record.CreatedAt,
		DetectedTitle:       record.DetectedTitle,
	}
	if s.ChatHistory == nil {
		s.ChatHistory = []models.ChatMessage{}
	}
	return s
}

// Record snapshots the session for archiving.
func (s *Session) Record() models.SessionRecord {
	return models.SessionRecord{
		Notes:               s.Notes,
		ParticipantHintsRaw: s.ParticipantHintsRaw,
		ChatHistory:         s.ChatHistory,
		CreatedAt:           s.CreatedAt,
		DetectedTitle:       s.DetectedTitle,
	}
}

// Answerer answers a question over the session transcript, streaming chunks
// through the callback and returning the complete response.
type Answerer interface {
	Answer(ctx context.Context, participantsRaw, transcript, question string, onChunk func(string)) (string, error)
}

// Chat answers one question over the session's transcript. The exchange is
// committed to the history only after the full response arrives; a failed
// or interrupted generation leaves the history untouched.
func (s *Session) Chat(ctx context.Context, answerer Answerer, question string, onChunk func(string)) (string, error) {
	if s.Notes.FullTranscript == "" {
		return "", stderrors.NewNoTranscriptForChatError()
	}

	answer, err := answerer.Answer(ctx, s.ParticipantHintsRaw, s.Notes.FullTranscript, question, onChunk)
	if err != nil {
		return "", err
	}

	s.ChatHistory = append(s.ChatHistory,
		models.ChatMessage{Role: models.ChatRoleUser, Content: question},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: answer},
	)
	return answer, nil
}
