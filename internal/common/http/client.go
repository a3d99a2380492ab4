// Package http provides the shared HTTP client used by the service
// clients under internal/common.
package http

import (
	"net/http"
	"time"
)

type Client struct {
	httpClient *http.Client
	authHeader string
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewBearerClient returns a client that attaches a bearer token to every
// request. All of this system's upstream services authenticate this way.
func NewBearerClient(token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		authHeader: "Bearer " + token,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.authHeader != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", c.authHeader)
	}
	return c.httpClient.Do(req)
}
