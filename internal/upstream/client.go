// Package upstream fetches the transit feeds over HTTP.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"tltstops.dev/internal/logging"
)

// ErrStatus matches every *StatusError.
var ErrStatus = errors.New("unexpected upstream status")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Config controls timeouts and the retry policy. Zero durations select the
// defaults; MaxRetries of zero disables retrying.
type Config struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxRetries      uint64        `yaml:"max_retries"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
	UserAgent       string        `yaml:"user_agent"`
}

const (
	DefaultTimeout         = 30 * time.Second
	DefaultMaxRetries      = 2
	DefaultInitialInterval = 250 * time.Millisecond
	DefaultMaxInterval     = 2 * time.Second
	DefaultUserAgent       = "tltstops/1.0"
)

// Client performs GET requests, retrying transport errors and 5xx
// responses with exponential backoff. Once a successful response is handed
// out nothing is retried.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	config     Config
}

func NewClient(config Config, logger *slog.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.InitialInterval <= 0 {
		config.InitialInterval = DefaultInitialInterval
	}
	if config.MaxInterval <= 0 {
		config.MaxInterval = DefaultMaxInterval
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
		config:     config,
	}
}

func (c *Client) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.InitialInterval
	b.MaxInterval = c.config.MaxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, c.config.MaxRetries), ctx)
}

// OpenStream returns the body of a successful response to a GET of url. The
// caller must close it.
func (c *Client) OpenStream(ctx context.Context, url string) (io.ReadCloser, error) {
	attempt := 0
	body, err := backoff.RetryNotifyWithData(
		func() (io.ReadCloser, error) {
			attempt++
			return c.get(ctx, url)
		},
		c.backOff(ctx),
		func(err error, d time.Duration) {
			if c.logger != nil {
				c.logger.Warn("upstream_retry",
					slog.String("url", url),
					slog.Int("attempt", attempt),
					slog.Duration("backoff", d),
					slog.String("error", err.Error()))
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}

// FetchText reads the whole response to a GET of url.
func (c *Client) FetchText(ctx context.Context, url string) ([]byte, error) {
	body, err := c.OpenStream(ctx, url)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(body, c.logger, "upstream response body")

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, nil
	}

	logging.DrainAndClose(resp.Body, c.logger, "upstream error body")

	statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode}
	if resp.StatusCode >= 500 {
		return nil, statusErr
	}
	return nil, backoff.Permanent(statusErr)
}
