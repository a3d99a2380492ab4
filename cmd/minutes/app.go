package main

import (
	"go.uber.org/zap"

	"meeting-minutes/internal/archive"
	"meeting-minutes/internal/common/basecamp"
	"meeting-minutes/internal/common/config"
	"meeting-minutes/internal/common/drive"
	"meeting-minutes/internal/common/gcs"
	"meeting-minutes/internal/common/genai"
	"meeting-minutes/internal/common/logger"
	"meeting-minutes/internal/common/speech"
	"meeting-minutes/internal/common/transcoder"
	"meeting-minutes/internal/extract"
	"meeting-minutes/internal/pipeline"
	"meeting-minutes/internal/publish"
	"meeting-minutes/internal/vision"
)

// app wires the external clients and pipeline components for the commands.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	zapLog    *zap.Logger
	analyzer  *pipeline.Analyzer
	extractor *extract.Extractor
	publisher *publish.Publisher
	archive   *archive.Archive
	drive     *drive.Client
}

func buildApp(cfg *config.Config, log logger.Logger, zapLog *zap.Logger) (*app, error) {
	driveClient := drive.NewClient(cfg.Drive.Token, cfg.Drive.BaseURL, cfg.Drive.Timeout)
	basecampClient := basecamp.NewClient(cfg.Basecamp.Token, cfg.Basecamp.AccountID, cfg.Basecamp.BaseURL, cfg.Basecamp.UserAgent, cfg.Basecamp.Timeout)
	genaiClient := genai.NewClient(cfg.GenAI.APIKey, cfg.GenAI.BaseURL, cfg.GenAI.Model, cfg.GenAI.VisionModel, cfg.GenAI.Timeout)
	speechClient := speech.NewClient(cfg.Speech.APIKey, cfg.Speech.BaseURL, cfg.Speech.PollInterval)
	stager := gcs.NewClient(cfg.Storage.Token, cfg.Storage.BaseURL, cfg.Storage.Bucket, cfg.Storage.Timeout)
	media := transcoder.New(cfg.Media.FFmpegPath, cfg.Media.FFprobePath)

	metadata, err := vision.NewExtractor(media, genaiClient, cfg.Minutes.Timezone, cfg.Media.FrameOffset, log)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewExtractor(genaiClient, log)
	sessionArchive := archive.New(driveClient, cfg.Drive.ArchiveFolder, log)

	analyzer := pipeline.NewAnalyzer(media, stager, speechClient, extractor, metadata, sessionArchive,
		pipeline.RecognitionOptions{
			LanguageCode: cfg.Speech.LanguageCode,
			MinSpeakers:  cfg.Speech.MinSpeakers,
			MaxSpeakers:  cfg.Speech.MaxSpeakers,
		}, log)

	return &app{
		cfg:       cfg,
		log:       log,
		zapLog:    zapLog,
		analyzer:  analyzer,
		extractor: extractor,
		publisher: publish.NewPublisher(driveClient, basecampClient, log),
		archive:   sessionArchive,
		drive:     driveClient,
	}, nil
}

func (a *app) close() {
	_ = a.zapLog.Sync()
}
