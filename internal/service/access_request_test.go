package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeshop/access-intake/internal/config"
	"github.com/valeshop/access-intake/internal/lib/webhook"
	"github.com/valeshop/access-intake/internal/model"
	"github.com/valeshop/access-intake/internal/server"
)

type fakeSender struct {
	payloads []any
	err      error
	delay    time.Duration
}

func (f *fakeSender) Send(_ context.Context, payload any) error {
	f.payloads = append(f.payloads, payload)
	time.Sleep(f.delay)
	return f.err
}

func newTestService(sender Sender) *AccessRequestService {
	s := &server.Server{
		Config: &config.Config{
			Observability: config.DefaultObservabilityConfig(),
		},
	}
	return NewAccessRequestService(s, sender)
}

func request() *model.AccessRequest {
	return &model.AccessRequest{
		RequesterName:  "Ana",
		RequesterEmail: "ana@valeshop.com.br",
		Reason:         "Suporte",
		DurationHours:  model.NewDurationHours("3"),
		Application:    "Sankya",
	}
}

func TestForward_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	sender := &fakeSender{}

	req := request()
	require.NoError(t, newTestService(sender).Forward(context.Background(), &logger, req))

	require.Len(t, sender.payloads, 1)
	assert.Same(t, req, sender.payloads[0])
	assert.Contains(t, buf.String(), `"stage":"forwarding"`)
	assert.Contains(t, buf.String(), `"stage":"forwarded"`)
	assert.NotContains(t, buf.String(), `"stage":"forward_failed"`)
}

func TestForward_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	sender := &fakeSender{err: &webhook.StatusError{StatusCode: 503, Body: "down"}}

	err := newTestService(sender).Forward(context.Background(), &logger, request())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForwardFailed))
	assert.Len(t, sender.payloads, 1, "no retry")
	assert.Contains(t, buf.String(), `"stage":"forward_failed"`)
	assert.Contains(t, buf.String(), `"webhook_status":503`)
	assert.Contains(t, buf.String(), `"webhook_body":"down"`)
}

func TestForward_SlowWebhookWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	svc := newTestService(&fakeSender{delay: 20 * time.Millisecond})
	svc.server.Config.Observability.Logging.SlowWebhookThreshold = time.Millisecond

	require.NoError(t, svc.Forward(context.Background(), &logger, request()))
	assert.Contains(t, buf.String(), "slow webhook call")
}
