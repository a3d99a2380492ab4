package vision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-minutes/internal/common/logger"
)

type fakeFrames struct {
	available   bool
	duration    float64
	durationErr error
	frameDir    string
	frameErr    error
	framePath   string
}

func (f *fakeFrames) Available() bool { return f.available }

func (f *fakeFrames) Duration(context.Context, string) (float64, error) {
	return f.duration, f.durationErr
}

func (f *fakeFrames) ExtractFrame(_ context.Context, _ string, _ int) (string, error) {
	if f.frameErr != nil {
		return "", f.frameErr
	}
	f.framePath = filepath.Join(f.frameDir, "frame.jpg")
	if err := os.WriteFile(f.framePath, []byte("jpeg-bytes"), 0o644); err != nil {
		return "", err
	}
	return f.framePath, nil
}

type fakeVision struct {
	response string
	err      error
	image    []byte
}

func (f *fakeVision) GenerateVision(_ context.Context, _ string, image []byte, _ string) (string, error) {
	f.image = image
	return f.response, f.err
}

func newTestExtractor(t *testing.T, frames *fakeFrames, gen *fakeVision) *Extractor {
	t.Helper()
	e, err := NewExtractor(frames, gen, "Asia/Singapore", 1, logger.NewTestLogger(t))
	require.NoError(t, err)
	return e
}

func TestExtract_FullMetadata(t *testing.T) {
	frames := &fakeFrames{available: true, duration: 3960, frameDir: t.TempDir()}
	gen := &fakeVision{response: `{"datetime": "2025-03-10 07:04", "title": "Quarterly Review", "venue": "Room 4A"}`}
	e := newTestExtractor(t, frames, gen)

	meta := e.Extract(context.Background(), "meeting.mp4")

	assert.Equal(t, "Quarterly_Review", meta.Title, "spaces become underscores")
	assert.Equal(t, "Room 4A", meta.Venue)
	require.NotNil(t, meta.Start)
	// 07:04 UTC converted to UTC+8
	assert.Equal(t, "03:04 PM - 04:10 PM", meta.TimeRange())
	assert.Equal(t, []byte("jpeg-bytes"), gen.image)

	_, err := os.Stat(frames.framePath)
	assert.True(t, os.IsNotExist(err), "frame file must be removed after use")
}

func TestExtract_ToolUnavailable(t *testing.T) {
	e := newTestExtractor(t, &fakeFrames{available: false}, &fakeVision{})

	meta := e.Extract(context.Background(), "meeting.mp4")
	assert.Equal(t, DefaultTitle, meta.Title)
	assert.Equal(t, "Unknown", meta.TimeRange())
}

func TestExtract_DegradesOnFailures(t *testing.T) {
	tests := []struct {
		name   string
		frames *fakeFrames
		gen    *fakeVision
	}{
		{
			name:   "frame extraction fails",
			frames: &fakeFrames{available: true, frameErr: errors.New("ffmpeg exited 1")},
			gen:    &fakeVision{},
		},
		{
			name:   "vision call fails",
			frames: &fakeFrames{available: true},
			gen:    &fakeVision{err: errors.New("service down")},
		},
		{
			name:   "garbage response",
			frames: &fakeFrames{available: true},
			gen:    &fakeVision{response: "I cannot see an image here."},
		},
		{
			name:   "all-None response",
			frames: &fakeFrames{available: true},
			gen:    &fakeVision{response: `{"datetime": "None", "title": "None", "venue": "None"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.frames.frameDir = t.TempDir()
			e := newTestExtractor(t, tt.frames, tt.gen)

			meta := e.Extract(context.Background(), "meeting.mp4")
			assert.Equal(t, DefaultTitle, meta.Title)
			assert.Empty(t, meta.Venue)
			assert.Nil(t, meta.Start)
		})
	}
}

func TestExtract_TitleSanitizedForFilenames(t *testing.T) {
	frames := &fakeFrames{available: true, frameDir: t.TempDir()}
	gen := &fakeVision{response: `{"datetime": "None", "title": "Q1/Q2 Review", "venue": "None"}`}
	e := newTestExtractor(t, frames, gen)

	meta := e.Extract(context.Background(), "meeting.mp4")
	assert.Equal(t, "Q1Q2_Review", meta.Title)
	assert.NotContains(t, meta.Title, "/")
	assert.NotContains(t, meta.Title, "\\")
}

func TestExtract_FencedJSON(t *testing.T) {
	frames := &fakeFrames{available: true, frameDir: t.TempDir()}
	gen := &fakeVision{response: "```json\n{\"datetime\": \"None\", \"title\": \"Sync Up\", \"venue\": \"None\"}\n```"}
	e := newTestExtractor(t, frames, gen)

	meta := e.Extract(context.Background(), "meeting.mp4")
	assert.Equal(t, "Sync_Up", meta.Title)
	assert.Nil(t, meta.Start)
}

func TestExtract_UnparseableDatetimeKeepsRest(t *testing.T) {
	frames := &fakeFrames{available: true, frameDir: t.TempDir()}
	gen := &fakeVision{response: `{"datetime": "tomorrow-ish", "title": "Board Meeting", "venue": "HQ"}`}
	e := newTestExtractor(t, frames, gen)

	meta := e.Extract(context.Background(), "meeting.mp4")
	assert.Equal(t, "Board_Meeting", meta.Title)
	assert.Equal(t, "HQ", meta.Venue)
	assert.Nil(t, meta.Start)
}

func TestNewExtractor_UnknownTimezone(t *testing.T) {
	_, err := NewExtractor(&fakeFrames{}, &fakeVision{}, "Mars/Olympus", 1, logger.NewNoOpLogger())
	assert.Error(t, err)
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Weekly Sync", "Weekly_Sync"},
		{"a/b\\c", "abc"},
		{"", DefaultTitle},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, SanitizeTitle(tt.in))
	}
}
