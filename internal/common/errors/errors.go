// Package errors provides standardized error handling for the analysis pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Stage failure codes. Each terminal error names the stage that produced it.
const (
	ErrCodeTranscodeFailed     ErrorCode = "TRANSCODE_FAILED"
	ErrCodeStagingUploadFailed ErrorCode = "STAGING_UPLOAD_FAILED"
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	ErrCodeNoSpeechDetected    ErrorCode = "NO_SPEECH_DETECTED"
	ErrCodeGenerationFailed    ErrorCode = "GENERATION_FAILED"

	ErrCodeStorageUploadFailed   ErrorCode = "STORAGE_UPLOAD_FAILED"
	ErrCodeStorageDownloadFailed ErrorCode = "STORAGE_DOWNLOAD_FAILED"
	ErrCodeAttachmentFailed      ErrorCode = "ATTACHMENT_UPLOAD_FAILED"
	ErrCodePublishFailed         ErrorCode = "PUBLISH_FAILED"
	ErrCodeInvalidTarget         ErrorCode = "INVALID_PUBLISH_TARGET"

	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeNoTranscriptForChat  ErrorCode = "NO_TRANSCRIPT_FOR_CHAT"

	ErrCodeArchiveSaveFailed ErrorCode = "ARCHIVE_SAVE_FAILED"
	ErrCodeArchiveLoadFailed ErrorCode = "ARCHIVE_LOAD_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("%s[%s]: %s", e.Stage, e.Code, e.Message)
}

// Is lets errors.Is match on the error code.
func (e *StandardError) Is(target error) bool {
	var std *StandardError
	if errors.As(target, &std) {
		return std.Code == e.Code
	}
	return false
}

// CodeOf extracts the ErrorCode from an error chain, or "INTERNAL_ERROR".
func CodeOf(err error) ErrorCode {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code
	}
	return "INTERNAL_ERROR"
}

// NewTranscodeFailedError creates a retryable media conversion error.
func NewTranscodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTranscodeFailed,
		Stage:     "transcode",
		Message:   "Media conversion failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStagingUploadFailedError creates a retryable staging upload error.
func NewStagingUploadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStagingUploadFailed,
		Stage:     "staging",
		Message:   "Upload of transcription input failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTranscriptionFailedError creates a retryable transcription service error.
func NewTranscriptionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTranscriptionFailed,
		Stage:     "transcription",
		Message:   "Diarized transcription failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoSpeechDetectedError creates a non-retryable empty-transcript error.
func NewNoSpeechDetectedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoSpeechDetected,
		Stage:     "transcription",
		Message:   "No speech detected in the recording",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError creates a retryable text-generation error.
func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Stage:     "extraction",
		Message:   "Text generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUploadFailedError creates a retryable folder-store upload error.
func NewStorageUploadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUploadFailed,
		Stage:     "publish",
		Message:   "Folder store upload failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAttachmentFailedError creates a retryable attachment upload error.
// Phase 2 of a project-management publish is never attempted after this.
func NewAttachmentFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAttachmentFailed,
		Stage:     "publish",
		Message:   "Attachment upload failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPublishFailedError creates a retryable record-creation error.
func NewPublishFailedError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePublishFailed,
		Stage:     "publish",
		Message:   fmt.Sprintf("Posting to %s failed", target),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTargetError marks an unrecognized publish target. This is a
// programming error, not a runtime condition.
func NewInvalidTargetError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTarget,
		Stage:     "publish",
		Message:   "Unrecognized publish target",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredFieldError rejects document generation before any
// external call is made.
func NewMissingRequiredFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Stage:     "compose",
		Message:   "Required field is missing",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoTranscriptForChatError rejects chat before any external call is made.
func NewNoTranscriptForChatError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoTranscriptForChat,
		Stage:     "chat",
		Message:   "No transcript available; run an analysis first",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArchiveSaveFailedError creates a retryable archive persistence error.
func NewArchiveSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveSaveFailed,
		Stage:     "archive",
		Message:   "Session archive save failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewArchiveLoadFailedError creates a retryable archive load error.
func NewArchiveLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveLoadFailed,
		Stage:     "archive",
		Message:   "Session archive load failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
