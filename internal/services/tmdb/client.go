package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"cinelog/internal/config"
	"cinelog/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// idSegment matches numeric path segments so metric labels stay low-cardinality
var idSegment = regexp.MustCompile(`/\d+`)

// UpstreamError reports that every attempt against the TMDB API failed.
// Callers may fall back to stale cache or degrade to an "unavailable" state.
type UpstreamError struct {
	Endpoint string
	Attempts int
	Err      error // last underlying cause
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("tmdb request to %s failed after %d attempts: %v", e.Endpoint, e.Attempts, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// retryStep is the base delay between attempts; the wait grows linearly
// with the attempt index (0.5s, 1.0s, 1.5s, ...)
const retryStep = 500 * time.Millisecond

// linearBackOff implements backoff.BackOff with an attempt-scaled delay
type linearBackOff struct {
	step    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.step
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

// Client handles communication with the TMDB API
type Client struct {
	baseURL     string
	apiKey      string
	language    string
	maxAttempts int
	httpClient  *http.Client
	logger      *logrus.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB API key is required")
	}

	return &Client{
		baseURL:     cfg.TMDBBaseURL,
		apiKey:      cfg.TMDBAPIKey,
		language:    cfg.Language,
		maxAttempts: cfg.MaxAttempts,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		logger:      logger,
	}, nil
}

// get performs one logical GET against the TMDB API, retrying transient
// failures up to the attempt budget. The API key is injected automatically;
// the language parameter is set per endpoint because a few endpoints
// (watch/providers) reject it.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	fullURL := c.baseURL + path + "?" + params.Encode()
	endpoint := idSegment.ReplaceAllString(path, "/{id}")

	attempts := 0
	operation := func() error {
		attempts++
		err := c.attempt(ctx, fullURL, result)
		if err != nil {
			metrics.UpstreamAttempts.WithLabelValues(endpoint, "error").Inc()
		} else {
			metrics.UpstreamAttempts.WithLabelValues(endpoint, "ok").Inc()
		}
		return err
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{step: retryStep}, uint64(c.maxAttempts-1)),
		ctx,
	)

	notify := func(err error, wait time.Duration) {
		c.logger.WithFields(logrus.Fields{
			"endpoint": path,
			"attempt":  attempts,
			"wait":     wait,
		}).WithError(err).Warn("TMDB request failed, retrying")
	}

	if err := backoff.RetryNotify(operation, bo, notify); err != nil {
		return &UpstreamError{Endpoint: path, Attempts: attempts, Err: err}
	}

	return nil
}

// attempt performs a single HTTP round trip
func (c *Client) attempt(ctx context.Context, fullURL string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("TMDB returned status %d: %s", resp.StatusCode, string(body))
	}

	if result != nil {
		// A malformed body on a 2xx is not transient, don't burn retries on it
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
	}

	return nil
}
