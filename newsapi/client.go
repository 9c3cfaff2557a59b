package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public NewsAPI v2 root.
const DefaultBaseURL = "https://newsapi.org/v2"

// Client fetches top headlines from NewsAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client rooted at baseURL. Each request is bounded by
// timeout.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Endpoint returns the absolute top-headlines URL without parameters.
func (c *Client) Endpoint() string {
	return c.baseURL + TopHeadlinesPath
}

// TopHeadlines performs the request described by req. A non-2xx status
// yields a *StatusError and an error payload yields an *APIError.
func (c *Client) TopHeadlines(ctx context.Context, req Request) (*Response, error) {
	if !HasCredential(req.APIKey) {
		return nil, ErrMissingAPIKey
	}

	if req.Endpoint == "" {
		req.Endpoint = c.Endpoint()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("page", req.Page).
		Dur("duration", time.Since(start)).
		Msg("top-headlines response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if body.Status != "ok" {
		return nil, &APIError{Code: body.Code, Message: body.Message}
	}

	if body.Articles == nil {
		body.Articles = []Article{}
	}

	return &body, nil
}
