// Package gcs is the client for the bucket object store used to stage
// converted audio as transcription input. Staged objects are temporary:
// every upload is paired with a delete on all pipeline exit paths.
package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	internalhttp "meeting-minutes/internal/common/http"
)

type Client struct {
	baseURL    string
	bucket     string
	httpClient *internalhttp.Client
}

func NewClient(token, baseURL, bucket string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		bucket:     bucket,
		httpClient: internalhttp.NewBearerClient(token, timeout),
	}
}

// Upload stores an object and returns its remote reference.
func (c *Client) Upload(ctx context.Context, data []byte, objectName string) (string, error) {
	u := fmt.Sprintf("%s/upload/storage/v1/b/%s/o?name=%s", c.baseURL, c.bucket, url.QueryEscape(objectName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to upload object (status %d): %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("gs://%s/%s", c.bucket, objectName), nil
}

// Delete removes a staged object. Leftover objects are a correctness bug,
// not merely cosmetic; callers invoke this on every exit path.
func (c *Client) Delete(ctx context.Context, objectName string) error {
	u := fmt.Sprintf("%s/storage/v1/b/%s/o/%s", c.baseURL, c.bucket, url.PathEscape(objectName))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to delete object (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
