package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  name: minutes-test
speech:
  base_url: https://speech.example.com
  min_speakers: 3
  max_speakers: 5
drive:
  base_url: https://drive.example.com
  minutes_folder: Custom Notes
basecamp:
  account_id: "999"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "minutes-test", cfg.App.Name)
	assert.Equal(t, "https://speech.example.com", cfg.Speech.BaseURL)
	assert.Equal(t, 3, cfg.Speech.MinSpeakers)
	assert.Equal(t, 5, cfg.Speech.MaxSpeakers)
	assert.Equal(t, "Custom Notes", cfg.Drive.MinutesFolder)
	assert.Equal(t, "999", cfg.Basecamp.AccountID)
}

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: x\n"))
	require.NoError(t, err)

	assert.Equal(t, "ffmpeg", cfg.Media.FFmpegPath)
	assert.Equal(t, 1, cfg.Media.FrameOffset)
	assert.Equal(t, "en-US", cfg.Speech.LanguageCode)
	assert.Equal(t, 2, cfg.Speech.MinSpeakers)
	assert.Equal(t, 6, cfg.Speech.MaxSpeakers)
	assert.Equal(t, 5*time.Second, cfg.Speech.PollInterval)
	assert.Equal(t, "Meeting Notes", cfg.Drive.MinutesFolder)
	assert.Equal(t, "Chats", cfg.Drive.ChatFolder)
	assert.Equal(t, "Meeting_Data", cfg.Drive.ArchiveFolder)
	assert.Equal(t, "Asia/Singapore", cfg.Minutes.Timezone)
	assert.Equal(t, "Meeting_Minutes", cfg.Minutes.DefaultTitle)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_InvalidSpeakerBounds(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, `
speech:
  min_speakers: 8
  max_speakers: 2
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_speakers")
}

func TestLoadFromFile_SecretsFromEnvironment(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "env-secret")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: x\n"))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.GenAI.APIKey)
}
