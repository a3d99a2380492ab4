// Package drive is the client for the hierarchical-folder file storage
// service used for artifact distribution and session archival.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	internalhttp "meeting-minutes/internal/common/http"
)

type Client struct {
	baseURL    string
	httpClient *internalhttp.Client

	mu        sync.Mutex
	folderIDs map[string]string // resolved folder name -> id
}

// File is one storage entry as returned by List.
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdTime"`
}

func NewClient(token, baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: internalhttp.NewBearerClient(token, timeout),
		folderIDs:  make(map[string]string),
	}
}

// ResolveOrCreateFolder returns the id of the named top-level folder,
// creating it when absent. Resolved ids are cached per client.
func (c *Client) ResolveOrCreateFolder(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	if id, ok := c.folderIDs[name]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	id, err := c.findFolder(ctx, name)
	if err != nil {
		return "", err
	}
	if id == "" {
		id, err = c.createFolder(ctx, name)
		if err != nil {
			return "", err
		}
	}

	c.mu.Lock()
	c.folderIDs[name] = id
	c.mu.Unlock()
	return id, nil
}

func (c *Client) findFolder(ctx context.Context, name string) (string, error) {
	q := url.Values{}
	q.Set("type", "folder")
	q.Set("name", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v3/files?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to find folder (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Files []File `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Files) == 0 {
		return "", nil
	}
	return result.Files[0].ID, nil
}

func (c *Client) createFolder(ctx context.Context, name string) (string, error) {
	payload := map[string]interface{}{
		"name": name,
		"type": "folder",
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal folder metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/files", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to create folder (status %d): %s", resp.StatusCode, string(body))
	}

	var created File
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return created.ID, nil
}

// Upload stores data under the given parent folder and returns the file id.
func (c *Client) Upload(ctx context.Context, data []byte, filename, folderID string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	meta, err := mw.CreateFormField("metadata")
	if err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	metaJSON, _ := json.Marshal(map[string]interface{}{
		"name":    filename,
		"parents": []string{folderID},
	})
	if _, err := meta.Write(metaJSON); err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/files/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to upload file (status %d): %s", resp.StatusCode, string(body))
	}

	var uploaded File
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return uploaded.ID, nil
}

// List returns the files under a folder matching the name filter, newest
// first. An empty filter returns everything.
func (c *Client) List(ctx context.Context, folderID, filter string) ([]File, error) {
	q := url.Values{}
	q.Set("parent", folderID)
	q.Set("orderBy", "createdTime desc")
	if filter != "" {
		q.Set("name", filter)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v3/files?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list files (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Files []File `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Files, nil
}

// Download fetches the raw contents of one file.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v3/files/%s/content", c.baseURL, fileID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to download file (status %d): %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
