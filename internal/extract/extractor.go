// Package extract builds note-extraction prompts, invokes the
// generative-text service, and splits the fixed-section responses into
// structured meeting notes.
package extract

import (
	"context"

	stderrors "meeting-minutes/internal/common/errors"
	"meeting-minutes/internal/common/logger"
	"meeting-minutes/internal/models"
)

// Generator is the slice of the generative-text client the extractor needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string, onChunk func(string)) (string, error)
}

type Extractor struct {
	gen    Generator
	logger logger.Logger
}

func NewExtractor(gen Generator, log logger.Logger) *Extractor {
	return &Extractor{
		gen:    gen,
		logger: log.With(map[string]interface{}{"stage": "extraction"}),
	}
}

// ExtractNotes runs one generation over the transcript and splits the
// response into meeting notes. A generation failure is terminal for the
// analysis run; no partial notes are returned.
func (e *Extractor) ExtractNotes(ctx context.Context, participantsRaw, transcript string) (models.MeetingNotes, error) {
	prompt := buildNotesPrompt(participantsRaw, transcript)

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.logger.Error("note generation failed", map[string]interface{}{"error": err.Error()})
		return models.MeetingNotes{}, stderrors.NewGenerationFailedError(err)
	}

	notes := SplitSections(text)
	notes.FullTranscript = transcript

	e.logger.Info("notes extracted", map[string]interface{}{
		"overviewLen":   len(notes.Overview),
		"discussionLen": len(notes.Discussion),
		"nextStepsLen":  len(notes.NextSteps),
	})
	return notes, nil
}

// Answer streams a chat response over the meeting content. Chunks are
// surfaced through onChunk as they arrive; the returned string is the full
// response, valid only when err is nil.
func (e *Extractor) Answer(ctx context.Context, participantsRaw, transcript, question string, onChunk func(string)) (string, error) {
	prompt := buildChatPrompt(participantsRaw, transcript, question)

	full, err := e.gen.GenerateStream(ctx, prompt, onChunk)
	if err != nil {
		e.logger.Error("chat generation failed", map[string]interface{}{"error": err.Error()})
		return "", stderrors.NewGenerationFailedError(err)
	}
	return full, nil
}
