// Package basecamp is the client for the project-management service. It
// exposes the three posting shapes the publisher dispatches over (task item,
// discussion post, file-vault upload) plus the listing calls used to pick a
// posting target.
package basecamp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	internalhttp "meeting-minutes/internal/common/http"
)

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *internalhttp.Client
}

// Project is one active project visible to the authorized user.
type Project struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// DockTool is one tool enabled on a project (todoset, message_board, vault).
type DockTool struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// TodoList is one list under a project's todoset.
type TodoList struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func NewClient(token, accountID, baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("%s/%s", baseURL, accountID),
		userAgent:  userAgent,
		httpClient: internalhttp.NewBearerClient(token, timeout),
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
}

// Projects lists active projects sorted by name.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/projects.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list projects (status %d): %s", resp.StatusCode, string(body))
	}

	var all []Project
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	active := all[:0]
	for _, p := range all {
		if p.Status == "active" {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

// ProjectDock returns the tools enabled on a project.
func (c *Client) ProjectDock(ctx context.Context, projectID int64) ([]DockTool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/projects/%d.json", c.baseURL, projectID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get project (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Dock []DockTool `json:"dock"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Dock, nil
}

// TodoLists lists the todo lists under a project's todoset, sorted by title.
func (c *Client) TodoLists(ctx context.Context, projectID, todosetID int64) ([]TodoList, error) {
	u := fmt.Sprintf("%s/buckets/%d/todosets/%d/todolists.json", c.baseURL, projectID, todosetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list todo lists (status %d): %s", resp.StatusCode, string(body))
	}

	var lists []TodoList
	if err := json.NewDecoder(resp.Body).Decode(&lists); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].Title < lists[j].Title })
	return lists, nil
}

// UploadAttachment stores raw bytes as a generic attachment and returns the
// opaque handle later embedded in posted records.
func (c *Client) UploadAttachment(ctx context.Context, data []byte, filename string) (string, error) {
	u := c.baseURL + "/attachments.json?name=" + url.QueryEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("failed to upload attachment (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AttachableSGID string `json:"attachable_sgid"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if result.AttachableSGID == "" {
		return "", fmt.Errorf("no attachable_sgid in response")
	}
	return result.AttachableSGID, nil
}

// CreateTodo posts a task item under a todo list. The attachment markup is
// already embedded in the description by the caller.
func (c *Client) CreateTodo(ctx context.Context, projectID, listID int64, content, description string) error {
	u := fmt.Sprintf("%s/buckets/%d/todolists/%d/todos.json", c.baseURL, projectID, listID)
	payload := map[string]interface{}{
		"content":     content,
		"description": description,
	}
	return c.post(ctx, u, payload, "todo")
}

// CreateMessage posts a discussion message to a message board.
func (c *Client) CreateMessage(ctx context.Context, projectID, boardID int64, subject, content string) error {
	u := fmt.Sprintf("%s/buckets/%d/message_boards/%d/messages.json", c.baseURL, projectID, boardID)
	payload := map[string]interface{}{
		"subject": subject,
		"content": content,
		"status":  "active",
	}
	return c.post(ctx, u, payload, "message")
}

// CreateVaultUpload files an uploaded attachment into a document vault.
func (c *Client) CreateVaultUpload(ctx context.Context, projectID, vaultID int64, sgid, baseName, content string) error {
	u := fmt.Sprintf("%s/buckets/%d/vaults/%d/uploads.json", c.baseURL, projectID, vaultID)
	payload := map[string]interface{}{
		"attachable_sgid": sgid,
		"base_name":       baseName,
		"content":         content,
	}
	return c.post(ctx, u, payload, "vault upload")
}

func (c *Client) post(ctx context.Context, u string, payload map[string]interface{}, kind string) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to create %s (status %d): %s", kind, resp.StatusCode, string(body))
	}
	return nil
}
