// Package speech is the client for the diarized speech-to-text service. The
// service is a black box that returns ordered word tokens with speaker tags;
// long recognitions run as an operation the client polls for completion and
// a 0-100 progress value.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meeting-minutes/internal/models"
)

type Client struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	httpClient   *http.Client
}

// RecognitionConfig mirrors the service's request shape.
type RecognitionConfig struct {
	Encoding     string `json:"encoding"`
	LanguageCode string `json:"languageCode"`
	Diarization  struct {
		Enabled         bool `json:"enableSpeakerDiarization"`
		MinSpeakerCount int  `json:"minSpeakerCount"`
		MaxSpeakerCount int  `json:"maxSpeakerCount"`
	} `json:"diarizationConfig"`
}

// Result is the completed recognition payload: word tokens from the final
// diarized alternative plus the per-result non-diarized transcripts used as
// fallback.
type Result struct {
	Words        []models.WordToken
	Alternatives []string
}

// Operation is the long-running recognition state returned by Poll.
type Operation struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Progress int    `json:"progressPercent"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error"`
	Response *recognizeResponse `json:"response"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string             `json:"transcript"`
			Words      []models.WordToken `json:"words"`
		} `json:"alternatives"`
	} `json:"results"`
}

func NewClient(apiKey, baseURL string, pollInterval time.Duration) *Client {
	return &Client{
		apiKey:       apiKey,
		baseURL:      baseURL,
		pollInterval: pollInterval,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// StartRecognize submits a remote audio reference for diarized recognition
// and returns the long-running operation name.
func (c *Client) StartRecognize(ctx context.Context, audioRef string, cfg RecognitionConfig) (string, error) {
	payload := map[string]interface{}{
		"config": cfg,
		"audio":  map[string]string{"uri": audioRef},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speech:longrunningrecognize", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to start recognition (status %d): %s", resp.StatusCode, string(body))
	}

	var op Operation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if op.Name == "" {
		return "", fmt.Errorf("no operation name in response")
	}
	return op.Name, nil
}

// Poll fetches the current state of an operation.
func (c *Client) Poll(ctx context.Context, operation string) (*Operation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/operations/%s", c.baseURL, operation), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to poll operation (status %d): %s", resp.StatusCode, string(body))
	}

	var op Operation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &op, nil
}

// Transcribe runs a recognition to completion, reporting 0-100 progress via
// onProgress as the operation advances.
func (c *Client) Transcribe(ctx context.Context, audioRef string, cfg RecognitionConfig, onProgress func(int)) (*Result, error) {
	operation, err := c.StartRecognize(ctx, audioRef, cfg)
	if err != nil {
		return nil, err
	}

	for {
		op, err := c.Poll(ctx, operation)
		if err != nil {
			return nil, err
		}
		if onProgress != nil {
			onProgress(op.Progress)
		}
		if op.Done {
			if op.Error != nil {
				return nil, fmt.Errorf("recognition failed: %s", op.Error.Message)
			}
			return collectResult(op.Response), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// collectResult takes the word tokens of the last result's first alternative
// (the diarized one) and keeps every result's plain transcript as fallback.
func collectResult(resp *recognizeResponse) *Result {
	out := &Result{}
	if resp == nil {
		return out
	}
	for _, r := range resp.Results {
		if len(r.Alternatives) > 0 && r.Alternatives[0].Transcript != "" {
			out.Alternatives = append(out.Alternatives, r.Alternatives[0].Transcript)
		}
	}
	if n := len(resp.Results); n > 0 {
		last := resp.Results[n-1]
		if len(last.Alternatives) > 0 {
			out.Words = last.Alternatives[0].Words
		}
	}
	return out
}
