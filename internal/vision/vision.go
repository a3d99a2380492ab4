// Package vision recovers meeting metadata (title, venue, start time) from a
// representative video frame via the generative-text service's vision mode.
// Everything here degrades to defaults: a missing tool, an absent frame, or
// a malformed response must never fail the overall analysis.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"meeting-minutes/internal/common/logger"
)

// DefaultTitle is used when no title can be recovered from the frame.
const DefaultTitle = "Meeting_Minutes"

const framePrompt = `Analyze this meeting screenshot. Return JSON:
{ "datetime": "YYYY-MM-DD HH:MM", "title": "Center Text", "venue": "Corner Text" }
If not found, use "None".`

// FrameTool is the slice of the transcoder the extractor needs.
type FrameTool interface {
	Available() bool
	Duration(ctx context.Context, inputPath string) (float64, error)
	ExtractFrame(ctx context.Context, inputPath string, offsetSeconds int) (string, error)
}

// VisionGenerator is the vision-mode slice of the generative-text client.
type VisionGenerator interface {
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Metadata is the recovered (or defaulted) meeting metadata. Start is nil
// when no datetime was detected; when present it is already converted to
// the target timezone.
type Metadata struct {
	Title    string
	Venue    string
	Start    *time.Time
	Duration time.Duration
}

type Extractor struct {
	frames      FrameTool
	gen         VisionGenerator
	location    *time.Location
	frameOffset int
	logger      logger.Logger
}

func NewExtractor(frames FrameTool, gen VisionGenerator, timezone string, frameOffset int, log logger.Logger) (*Extractor, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	return &Extractor{
		frames:      frames,
		gen:         gen,
		location:    loc,
		frameOffset: frameOffset,
		logger:      log.With(map[string]interface{}{"stage": "metadata"}),
	}, nil
}

// Extract recovers metadata from the media file. The returned Metadata is
// always usable; any failure along the way leaves the affected field at its
// default. A detected datetime is interpreted as UTC and converted to the
// configured display timezone.
func (e *Extractor) Extract(ctx context.Context, mediaPath string) Metadata {
	meta := Metadata{Title: DefaultTitle}

	if !e.frames.Available() {
		e.logger.Warn("media tool unavailable, using default metadata", nil)
		return meta
	}

	if dur, err := e.frames.Duration(ctx, mediaPath); err == nil {
		meta.Duration = time.Duration(dur * float64(time.Second))
	} else {
		e.logger.Warn("duration query failed", map[string]interface{}{"error": err.Error()})
	}

	framePath, err := e.frames.ExtractFrame(ctx, mediaPath, e.frameOffset)
	if err != nil {
		e.logger.Warn("frame extraction failed", map[string]interface{}{"error": err.Error()})
		return meta
	}
	defer func() {
		if err := os.Remove(framePath); err != nil && !os.IsNotExist(err) {
			e.logger.Warn("frame cleanup failed", map[string]interface{}{"path": framePath, "error": err.Error()})
		}
	}()

	frame, err := os.ReadFile(framePath)
	if err != nil {
		e.logger.Warn("frame read failed", map[string]interface{}{"error": err.Error()})
		return meta
	}

	resp, err := e.gen.GenerateVision(ctx, framePrompt, frame, "image/jpeg")
	if err != nil {
		e.logger.Warn("vision generation failed", map[string]interface{}{"error": err.Error()})
		return meta
	}

	e.applyResponse(&meta, resp)
	return meta
}

type frameResponse struct {
	Datetime string `json:"datetime"`
	Title    string `json:"title"`
	Venue    string `json:"venue"`
}

// applyResponse parses the vision JSON defensively; the model may fence the
// payload in code blocks, return "None" placeholders, or produce garbage.
func (e *Extractor) applyResponse(meta *Metadata, resp string) {
	cleaned := strings.TrimSpace(resp)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var parsed frameResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		e.logger.Warn("unparseable vision response, keeping defaults", map[string]interface{}{"error": err.Error()})
		return
	}

	if parsed.Title != "" && parsed.Title != "None" {
		meta.Title = SanitizeTitle(parsed.Title)
	}
	if parsed.Venue != "" && parsed.Venue != "None" {
		meta.Venue = parsed.Venue
	}
	if parsed.Datetime != "" && parsed.Datetime != "None" {
		if dt, err := time.ParseInLocation("2006-01-02 15:04", parsed.Datetime, time.UTC); err == nil {
			local := dt.In(e.location)
			meta.Start = &local
		} else {
			e.logger.Warn("unparseable detected datetime", map[string]interface{}{"value": parsed.Datetime})
		}
	}
}

// TimeRange renders "03:04 PM - 04:10 PM" from the detected start and the
// container duration, or "Unknown" when either is missing.
func (m Metadata) TimeRange() string {
	if m.Start == nil || m.Duration <= 0 {
		return "Unknown"
	}
	end := m.Start.Add(m.Duration)
	return fmt.Sprintf("%s - %s", m.Start.Format("03:04 PM"), end.Format("03:04 PM"))
}

// SanitizeTitle makes a detected title safe for use as a filename component.
func SanitizeTitle(title string) string {
	s := strings.ReplaceAll(title, " ", "_")
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, "\\", "")
	if s == "" {
		return DefaultTitle
	}
	return s
}
