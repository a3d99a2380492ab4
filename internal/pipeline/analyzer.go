package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	stderrors "meeting-minutes/internal/common/errors"
	"meeting-minutes/internal/common/logger"
	"meeting-minutes/internal/common/metrics"
	"meeting-minutes/internal/common/speech"
	"meeting-minutes/internal/models"
	"meeting-minutes/internal/transcript"
	"meeting-minutes/internal/vision"
)

// MediaTool converts recordings to the audio format the speech service
// accepts.
type MediaTool interface {
	Available() bool
	ConvertToFLAC(ctx context.Context, inputPath string) (string, error)
}

// Stager holds transcription input in temporary remote storage.
type Stager interface {
	Upload(ctx context.Context, data []byte, objectName string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// SpeechService runs diarized recognition over a staged audio reference.
type SpeechService interface {
	Transcribe(ctx context.Context, audioRef string, cfg speech.RecognitionConfig, onProgress func(int)) (*speech.Result, error)
}

// NotesExtractor turns a flat transcript into sectioned notes.
type NotesExtractor interface {
	ExtractNotes(ctx context.Context, participantsRaw, transcript string) (models.MeetingNotes, error)
}

// MetadataExtractor recovers display metadata from the recording; it never
// fails, only degrades.
type MetadataExtractor interface {
	Extract(ctx context.Context, mediaPath string) vision.Metadata
}

// Archiver persists the finished session.
type Archiver interface {
	Save(ctx context.Context, record models.SessionRecord, sourceName string) (string, error)
}

// RecognitionOptions parameterize the speech request.
type RecognitionOptions struct {
	LanguageCode string
	MinSpeakers  int
	MaxSpeakers  int
}

// Analyzer runs the full analysis: transcode, stage, transcribe, extract
// notes, and archive. Visual metadata extraction runs concurrently with the
// audio path since neither depends on the other.
type Analyzer struct {
	media    MediaTool
	stager   Stager
	speech   SpeechService
	notes    NotesExtractor
	metadata MetadataExtractor
	archive  Archiver
	options  RecognitionOptions
	logger   logger.Logger
}

func NewAnalyzer(media MediaTool, stager Stager, speechSvc SpeechService, notes NotesExtractor, metadata MetadataExtractor, archive Archiver, options RecognitionOptions, log logger.Logger) *Analyzer {
	return &Analyzer{
		media:    media,
		stager:   stager,
		speech:   speechSvc,
		notes:    notes,
		metadata: metadata,
		archive:  archive,
		options:  options,
		logger:   log.With(map[string]interface{}{"component": "analyzer"}),
	}
}

// AnalysisResult is the outcome of one run.
type AnalysisResult struct {
	Session  *Session
	Metadata vision.Metadata
}

// Run analyzes one recording end to end. Temporary artifacts (the converted
// audio file and the staged remote object) are removed on every exit path;
// cleanup failures are logged and swallowed so they never mask the run's
// own outcome. Progress, when non-nil, receives transcription percentages.
func (a *Analyzer) Run(ctx context.Context, mediaPath, participantsRaw string, onProgress func(int)) (*AnalysisResult, error) {
	runLog := a.logger.With(map[string]interface{}{"media": filepath.Base(mediaPath)})
	runLog.Info("analysis started", nil)

	// Metadata extraction degrades internally and always yields a value, so
	// it needs no error channel.
	metaCh := make(chan vision.Metadata, 1)
	go func() {
		metaCh <- a.metadata.Extract(ctx, mediaPath)
	}()

	flatText, err := a.transcribe(ctx, mediaPath, runLog, onProgress)
	meta := <-metaCh
	if err != nil {
		return nil, err
	}

	notes, err := a.extractNotes(ctx, participantsRaw, flatText)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Notes:               notes,
		ParticipantHintsRaw: participantsRaw,
		ChatHistory:         []models.ChatMessage{},
		CreatedAt:           time.Now(),
		DetectedTitle:       meta.Title,
	}

	// Archiving is best effort: the analysis already succeeded and its
	// results are in memory, so a storage hiccup only costs the record.
	sourceName := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	if _, err := a.archive.Save(ctx, session.Record(), sourceName); err != nil {
		runLog.Warn("session archive failed", map[string]interface{}{"error": err.Error()})
	}

	runLog.Info("analysis completed", nil)
	return &AnalysisResult{Session: session, Metadata: meta}, nil
}

// transcribe runs the audio path: convert, stage, recognize, flatten.
func (a *Analyzer) transcribe(ctx context.Context, mediaPath string, runLog logger.Logger, onProgress func(int)) (string, error) {
	if !a.media.Available() {
		return "", stderrors.NewTranscodeFailedError(fmt.Errorf("ffmpeg not found on PATH"))
	}

	start := time.Now()
	audioPath, err := a.media.ConvertToFLAC(ctx, mediaPath)
	if err != nil {
		metrics.StagesFailed.WithLabelValues("transcode", string(stderrors.CodeOf(err))).Inc()
		return "", err
	}
	a.observeStage("transcode", start)
	defer func() {
		if err := os.Remove(audioPath); err != nil {
			runLog.Warn("temp audio cleanup failed", map[string]interface{}{"path": audioPath, "error": err.Error()})
		}
	}()

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", stderrors.NewStagingUploadFailedError(err)
	}

	objectName := fmt.Sprintf("staging/%s.flac", uuid.New().String())
	start = time.Now()
	audioRef, err := a.stager.Upload(ctx, data, objectName)
	if err != nil {
		metrics.StagesFailed.WithLabelValues("staging", string(stderrors.CodeOf(err))).Inc()
		return "", err
	}
	a.observeStage("staging", start)
	defer func() {
		// Staged audio must not outlive the run regardless of outcome.
		if err := a.stager.Delete(context.WithoutCancel(ctx), objectName); err != nil {
			runLog.Warn("staged object cleanup failed", map[string]interface{}{"object": objectName, "error": err.Error()})
		}
	}()

	cfg := speech.RecognitionConfig{
		Encoding:     "FLAC",
		LanguageCode: a.options.LanguageCode,
	}
	cfg.Diarization.Enabled = true
	cfg.Diarization.MinSpeakerCount = a.options.MinSpeakers
	cfg.Diarization.MaxSpeakerCount = a.options.MaxSpeakers

	start = time.Now()
	result, err := a.speech.Transcribe(ctx, audioRef, cfg, onProgress)
	if err != nil {
		metrics.StagesFailed.WithLabelValues("transcription", string(stderrors.CodeOf(err))).Inc()
		return "", err
	}
	a.observeStage("transcription", start)

	flatText, ok := transcript.FullTranscript(result.Words, result.Alternatives)
	if !ok {
		metrics.StagesFailed.WithLabelValues("transcription", string(stderrors.ErrCodeNoSpeechDetected)).Inc()
		return "", stderrors.NewNoSpeechDetectedError()
	}
	return flatText, nil
}

func (a *Analyzer) extractNotes(ctx context.Context, participantsRaw, flatText string) (models.MeetingNotes, error) {
	start := time.Now()
	notes, err := a.notes.ExtractNotes(ctx, participantsRaw, flatText)
	if err != nil {
		metrics.StagesFailed.WithLabelValues("extraction", string(stderrors.CodeOf(err))).Inc()
		return models.MeetingNotes{}, err
	}
	a.observeStage("extraction", start)
	return notes, nil
}

func (a *Analyzer) observeStage(stage string, start time.Time) {
	metrics.StagesCompleted.WithLabelValues(stage).Inc()
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
