// Package transcoder wraps the external media tool (ffmpeg/ffprobe) for
// audio conversion, duration queries, and frame extraction. The binaries are
// external collaborators; nothing here decodes media itself.
package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type Transcoder struct {
	ffmpegPath  string
	ffprobePath string
}

func New(ffmpegPath, ffprobePath string) *Transcoder {
	return &Transcoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// Available reports whether the ffmpeg binary can be found. Metadata
// extraction degrades to defaults when it cannot.
func (t *Transcoder) Available() bool {
	_, err := exec.LookPath(t.ffmpegPath)
	return err == nil
}

// ConvertToFLAC produces a deterministic audio-only lossless copy of the
// input and returns its path. The caller owns cleanup of the output file.
func (t *Transcoder) ConvertToFLAC(ctx context.Context, inputPath string) (string, error) {
	outputPath := inputPath + ".flac"

	cmd := exec.CommandContext(ctx, t.ffmpegPath,
		"-i", inputPath,
		"-vn",
		"-acodec", "flac",
		"-y", outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg conversion failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	return outputPath, nil
}

// Duration queries the container duration in seconds.
func (t *Transcoder) Duration(ctx context.Context, inputPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, t.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable duration %q: %w", strings.TrimSpace(string(out)), err)
	}
	return dur, nil
}

// ExtractFrame grabs one frame at the given second offset as a JPEG and
// returns its path. The caller owns cleanup of the output file.
func (t *Transcoder) ExtractFrame(ctx context.Context, inputPath string, offsetSeconds int) (string, error) {
	outputPath := inputPath + ".thumb.jpg"

	cmd := exec.CommandContext(ctx, t.ffmpegPath,
		"-i", inputPath,
		"-ss", fmt.Sprintf("00:00:%02d", offsetSeconds),
		"-vframes", "1",
		"-q:v", "2",
		"-y", outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg frame extraction failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("no frame produced: %w", err)
	}
	return outputPath, nil
}
