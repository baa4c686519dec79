// Package client is a typed Go client for the pagegate HTTP API.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pagegate/pagegate/internal/api/presenter"
)

var ErrInvalidCredential = fmt.Errorf("invalid credential")

// Client talks to one pagegate server.
type Client struct {
	baseURL    string
	authToken  string
	githubMode bool

	httpClient *http.Client
}

type Option func(*Client)

// WithSessionToken authenticates requests with a session token
// (Authorization: Bearer).
func WithSessionToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
		c.githubMode = false
	}
}

// WithGitHubToken authenticates requests with a raw GitHub access token
// (X-GitHub-Token header).
func WithGitHubToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
		c.githubMode = true
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// urlBuilder assembles request URLs from the base address, a route and
// query parameters.
type urlBuilder struct {
	base  string
	path  string
	query url.Values
}

func (c *Client) url() *urlBuilder {
	return &urlBuilder{base: c.baseURL, query: url.Values{}}
}

func (b *urlBuilder) setPath(path string) *urlBuilder {
	b.path = path
	return b
}

func (b *urlBuilder) addQuery(key, value string) *urlBuilder {
	if value != "" {
		b.query.Set(key, value)
	}
	return b
}

func (b *urlBuilder) build() string {
	u := b.base + b.path
	if encoded := b.query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

type APIError struct {
	StatusCode    int
	CorrelationID string
	Message       string
	Reason        string
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error: '%s' (status %d, correlation: %s)", e.Message, e.StatusCode, e.CorrelationID)
}

func (c *Client) do(req *http.Request, result any) (string, error) {
	if c.authToken != "" {
		if c.githubMode {
			req.Header.Set("X-GitHub-Token", c.authToken)
		} else {
			req.Header.Set("Authorization", "Bearer "+c.authToken)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return correlationFromResponse(resp), parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return correlationFromResponse(resp), fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return correlationFromResponse(resp), nil
}

func parseErrorResponse(resp *http.Response) error {
	var errResp presenter.ErrorResponse
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d and unreadable body: %w", resp.StatusCode, err)
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		if errResp.Error == "invalid credential" {
			return ErrInvalidCredential
		}
		return APIError{
			StatusCode:    resp.StatusCode,
			CorrelationID: errResp.CorrelationID,
			Message:       errResp.Error,
			Reason:        errResp.Reason,
		}
	}
	return fmt.Errorf("api error: *unparsed '%s' (status %d)", string(body), resp.StatusCode)
}

func correlationFromResponse(resp *http.Response) string {
	return resp.Header.Get("X-Correlation-ID")
}
