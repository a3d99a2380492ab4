package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Media     MediaConfig     `mapstructure:"media"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	GenAI     GenAIConfig     `mapstructure:"genai"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Drive     DriveConfig     `mapstructure:"drive"`
	Basecamp  BasecampConfig  `mapstructure:"basecamp"`
	Minutes   MinutesConfig   `mapstructure:"minutes"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// MediaConfig controls the external transcoder binaries.
type MediaConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	FrameOffset int    `mapstructure:"frame_offset"` // seconds into the recording
}

type SpeechConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	LanguageCode string        `mapstructure:"language_code"`
	MinSpeakers  int           `mapstructure:"min_speakers"`
	MaxSpeakers  int           `mapstructure:"max_speakers"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type GenAIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	VisionModel string        `mapstructure:"vision_model"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// StorageConfig names the bucket used to stage transcription input.
type StorageConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Bucket  string        `mapstructure:"bucket"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DriveConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Token         string        `mapstructure:"token"`
	MinutesFolder string        `mapstructure:"minutes_folder"`
	ChatFolder    string        `mapstructure:"chat_folder"`
	ArchiveFolder string        `mapstructure:"archive_folder"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type BasecampConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AccountID string        `mapstructure:"account_id"`
	Token     string        `mapstructure:"token"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// MinutesConfig controls document composition defaults.
type MinutesConfig struct {
	Timezone     string `mapstructure:"timezone"`
	DefaultTitle string `mapstructure:"default_title"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
