// Package genai is the client for the generative-text service. The service
// is a black box: prompt in, text out, optionally streamed; the vision
// variant additionally accepts an image payload.
package genai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	httpClient  *http.Client
}

func NewClient(apiKey, baseURL, model, visionModel string, timeout time.Duration) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		visionModel: visionModel,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateRequest struct {
	Prompt string     `json:"prompt"`
	Image  *imagePart `json:"image,omitempty"`
	Stream bool       `json:"stream,omitempty"`
}

type imagePart struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate sends one prompt and returns the full response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.model, generateRequest{Prompt: prompt})
}

// GenerateVision sends a prompt plus an image payload to the vision model.
func (c *Client) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	return c.generate(ctx, c.visionModel, generateRequest{
		Prompt: prompt,
		Image: &imagePart{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		},
	})
}

func (c *Client) generate(ctx context.Context, model string, payload generateRequest) (string, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s:generate", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
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

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation failed (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return genResp.Text, nil
}

// GenerateStream consumes the response as an incremental chunk sequence,
// invoking onChunk for each piece as it arrives. The full concatenated text
// is returned only if the stream completes without error; callers must not
// commit partial output. The stream is finite and not restartable.
func (c *Client) GenerateStream(ctx context.Context, prompt string, onChunk func(string)) (string, error) {
	jsonData, err := json.Marshal(generateRequest{Prompt: prompt, Stream: true})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s:streamGenerate", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
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
		return "", fmt.Errorf("generation failed (status %d): %s", resp.StatusCode, string(body))
	}

	// Each line of the response body is one JSON chunk object.
	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var chunk generateResponse
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			return "", fmt.Errorf("failed to unmarshal stream chunk: %w", err)
		}
		if chunk.Text == "" {
			continue
		}
		full.WriteString(chunk.Text)
		if onChunk != nil {
			onChunk(chunk.Text)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("stream read failed: %w", err)
	}

	return full.String(), nil
}
