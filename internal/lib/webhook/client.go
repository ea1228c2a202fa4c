// Package webhook provides the client that forwards access requests to the
// external automation webhook.
//
// The webhook is opaque: its response body is never interpreted, only its
// status class. Anything other than a 2xx within the timeout is a failure.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/valeshop/access-intake/internal/config"
)

// maxResponseDetail caps how much of a failed response body is kept for logs.
const maxResponseDetail = 4 << 10

// ErrUnexpectedStatus is the cause of every non-2xx webhook response.
var ErrUnexpectedStatus = errors.New("webhook responded with a non-2xx status")

// StatusError carries the webhook response for a failed delivery.
// It is only ever logged.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return ErrUnexpectedStatus.Error() + ": " + http.StatusText(e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Client posts JSON payloads to one webhook URL.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewClient builds a Client from the webhook config.
//
// The HTTP client carries the configured timeout and, through
// newrelic.NewRoundTripper, records the call as an external segment whenever
// the request context holds a New Relic transaction.
func NewClient(cfg *config.WebhookConfig, logger *zerolog.Logger) *Client {
	return NewClientWithHTTPClient(cfg.URL, &http.Client{
		Timeout:   cfg.Timeout,
		Transport: newrelic.NewRoundTripper(http.DefaultTransport),
	}, logger)
}

// NewClientWithHTTPClient builds a Client around an existing HTTP client.
func NewClientWithHTTPClient(url string, httpClient *http.Client, logger *zerolog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

// URL returns the webhook the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Timeout returns the per-call limit, zero when unbounded.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Send POSTs payload as JSON.
//
// It returns nil only for a 2xx response. Network errors and timeouts are
// wrapped; non-2xx responses come back as *StatusError.
func (c *Client) Send(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to reach webhook after %s", time.Since(start).Round(time.Millisecond))
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("webhook responded")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseDetail))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(detail)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
