// Package client provides an HTTP client for the player's control API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
)

// Client talks to a running player daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the default request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a control API client.
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL: %q", baseURL)
	}

	c := &Client{
		baseURL: u.String(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Status fetches the player status.
func (c *Client) Status(ctx context.Context) (*v1alpha1.PlayerStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1alpha1/status", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status v1alpha1.PlayerStatus
	if err := decodeResponse(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Pair submits a link code to the player.
func (c *Client) Pair(ctx context.Context, code string) (*v1alpha1.LinkResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1alpha1/pair",
		v1alpha1.PairRequest{Code: code})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var link v1alpha1.LinkResponse
	if err := decodeResponse(resp, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Unpair clears the player's device identity.
func (c *Client) Unpair(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1alpha1/unpair", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return handleResponse(resp)
}

// doRequest performs an HTTP request with JSON encoding.
func (c *Client) doRequest(ctx context.Context, method, pathStr string, body interface{}) (*http.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	u.Path = path.Join(u.Path, pathStr)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	return resp, nil
}
