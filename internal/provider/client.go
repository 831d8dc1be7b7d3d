// internal/provider/client.go
package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/valpere/SurveyRanker/internal/utils"
)

// DefaultUserAgent identifies the tool to metadata endpoints.
const DefaultUserAgent = "SurveyRanker/1.0 (+https://github.com/valpere/SurveyRanker)"

// HTTPClient is the HTTP client shared by the providers. Each provider is
// attempted at most once per URL per run, so there is no retry loop here;
// transient failures are treated as permanent for the run.
type HTTPClient struct {
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
}

// ClientConfig defines configuration options for the HTTP client.
type ClientConfig struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// NewHTTPClient creates a new HTTP client with the specified configuration.
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.Timeout == 0 {
		config.Timeout = 20 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &HTTPClient{
		httpClient: httpClient,
		userAgent:  config.UserAgent,
		headers:    config.Headers,
	}
}

// Get performs a single HTTP GET request. Non-2xx responses are errors;
// the caller owns closing the body on success.
func (c *HTTPClient) Get(ctx context.Context, targetURL string) (*http.Response, error) {
	if _, err := url.Parse(targetURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, utils.WrapError(utils.ErrCodeProviderFailure, err, "request failed for %s", targetURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, utils.NewStructuredError(utils.ErrCodeProviderFailure, "unexpected status %d for %s", resp.StatusCode, targetURL)
	}

	return resp, nil
}
