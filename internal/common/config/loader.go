package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries several locations so commands work from subdirectories.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills secrets from the environment when the config
// file left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.GenAI.APIKey == "" {
		if val := os.Getenv("GENAI_API_KEY"); val != "" {
			cfg.GenAI.APIKey = val
		}
	}
	if cfg.Speech.APIKey == "" {
		if val := os.Getenv("SPEECH_API_KEY"); val != "" {
			cfg.Speech.APIKey = val
		}
	}
	if cfg.Storage.Token == "" {
		if val := os.Getenv("STORAGE_TOKEN"); val != "" {
			cfg.Storage.Token = val
		}
	}
	if cfg.Drive.Token == "" {
		if val := os.Getenv("DRIVE_TOKEN"); val != "" {
			cfg.Drive.Token = val
		}
	}
	if cfg.Basecamp.Token == "" {
		if val := os.Getenv("BASECAMP_TOKEN"); val != "" {
			cfg.Basecamp.Token = val
		}
	}
	if cfg.Basecamp.AccountID == "" {
		if val := os.Getenv("BASECAMP_ACCOUNT_ID"); val != "" {
			cfg.Basecamp.AccountID = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "meeting-minutes"
	}
	if cfg.Media.FFmpegPath == "" {
		cfg.Media.FFmpegPath = "ffmpeg"
	}
	if cfg.Media.FFprobePath == "" {
		cfg.Media.FFprobePath = "ffprobe"
	}
	if cfg.Media.FrameOffset == 0 {
		cfg.Media.FrameOffset = 1
	}
	if cfg.Speech.LanguageCode == "" {
		cfg.Speech.LanguageCode = "en-US"
	}
	if cfg.Speech.MinSpeakers == 0 {
		cfg.Speech.MinSpeakers = 2
	}
	if cfg.Speech.MaxSpeakers == 0 {
		cfg.Speech.MaxSpeakers = 6
	}
	if cfg.Speech.PollInterval == 0 {
		cfg.Speech.PollInterval = 5 * time.Second
	}
	if cfg.Speech.Timeout == 0 {
		cfg.Speech.Timeout = time.Hour
	}
	if cfg.GenAI.Timeout == 0 {
		cfg.GenAI.Timeout = 2 * time.Minute
	}
	if cfg.Storage.Timeout == 0 {
		cfg.Storage.Timeout = time.Hour
	}
	if cfg.Drive.Timeout == 0 {
		cfg.Drive.Timeout = 5 * time.Minute
	}
	if cfg.Drive.MinutesFolder == "" {
		cfg.Drive.MinutesFolder = "Meeting Notes"
	}
	if cfg.Drive.ChatFolder == "" {
		cfg.Drive.ChatFolder = "Chats"
	}
	if cfg.Drive.ArchiveFolder == "" {
		cfg.Drive.ArchiveFolder = "Meeting_Data"
	}
	if cfg.Basecamp.Timeout == 0 {
		cfg.Basecamp.Timeout = 2 * time.Minute
	}
	if cfg.Basecamp.UserAgent == "" {
		cfg.Basecamp.UserAgent = "Meeting Minutes App"
	}
	if cfg.Minutes.Timezone == "" {
		cfg.Minutes.Timezone = "Asia/Singapore"
	}
	if cfg.Minutes.DefaultTitle == "" {
		cfg.Minutes.DefaultTitle = "Meeting_Minutes"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Speech.MinSpeakers > cfg.Speech.MaxSpeakers {
		return fmt.Errorf("speech.min_speakers (%d) exceeds speech.max_speakers (%d)",
			cfg.Speech.MinSpeakers, cfg.Speech.MaxSpeakers)
	}
	if cfg.Media.FrameOffset < 0 {
		return fmt.Errorf("media.frame_offset must be non-negative")
	}
	return nil
}
