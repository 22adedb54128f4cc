package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config controls the HTTP client's retry behavior.
type Config struct {
	// Attempts is the total number of tries per page, including the first.
	Attempts int
	// MinDelay and MaxDelay bound the randomized wait between attempts.
	MinDelay time.Duration
	MaxDelay time.Duration
	// Timeout applies per request, not per page.
	Timeout time.Duration
}

// DefaultConfig returns production fetch settings.
func DefaultConfig() Config {
	return Config{
		Attempts: 15,
		MinDelay: 1 * time.Second,
		MaxDelay: 3 * time.Second,
		Timeout:  30 * time.Second,
	}
}

// Client fetches pages over plain HTTP with rotating browser headers and
// exponential backoff between attempts.
type Client struct {
	http    *http.Client
	cfg     Config
	headers *headerPool
}

// NewClient builds an HTTP fetcher with the given config.
func NewClient(cfg Config) *Client {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		headers: newHeaderPool(time.Now().UnixNano()),
	}
}

// Fetch retrieves a page, retrying transient failures up to the configured
// attempt count. A "Page not found." body stops retries immediately and
// returns PageNotFoundError.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.MinDelay
	bo.MaxInterval = c.cfg.MaxDelay
	bo.RandomizationFactor = 0.5

	var body string
	op := func() error {
		b, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		if strings.Contains(b, sentinelNotFound) {
			return backoff.Permanent(&PageNotFoundError{URL: url})
		}
		if strings.Contains(b, sentinelPageError) {
			return fmt.Errorf("page returned error body")
		}
		body = b
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(c.cfg.Attempts-1)), ctx))
	if err != nil {
		var pnf *PageNotFoundError
		if errors.As(err, &pnf) {
			return "", pnf
		}
		return "", &FetchError{URL: url, Attempts: c.cfg.Attempts, Err: err}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("building request: %w", err))
	}
	c.headers.apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(b), nil
}
