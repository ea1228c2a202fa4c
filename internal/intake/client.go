package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valeshop/access-intake/internal/model"
)

// DefaultRelayURL is where a locally running relay accepts submissions.
const DefaultRelayURL = "http://localhost:3333/api/solicitacao"

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// ConnectionError means the relay could not be reached or did not answer.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("relay unreachable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ServerError means the relay answered with a non-2xx status.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("relay responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// RelayClient submits access requests to the relay endpoint.
type RelayClient struct {
	url        string
	httpClient *http.Client
}

// ClientOption customizes a RelayClient.
type ClientOption func(*RelayClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(rc *RelayClient) {
		rc.httpClient = c
	}
}

// WithTimeout bounds each submission. Zero means no client-side limit.
// It applies to a copy, so a client passed to WithHTTPClient is left as is.
func WithTimeout(d time.Duration) ClientOption {
	return func(rc *RelayClient) {
		c := *rc.httpClient
		c.Timeout = d
		rc.httpClient = &c
	}
}

// NewRelayClient returns a client posting to url.
func NewRelayClient(url string, opts ...ClientOption) *RelayClient {
	rc := &RelayClient{
		url:        url,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Submit POSTs req as JSON. It returns *ConnectionError when no response
// arrives and *ServerError for any non-2xx response.
func (c *RelayClient) Submit(ctx context.Context, req model.AccessRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding access request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &ServerError{StatusCode: resp.StatusCode, Body: string(respBody)}
}
