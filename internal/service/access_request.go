package service

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/valeshop/access-intake/internal/lib/webhook"
	"github.com/valeshop/access-intake/internal/model"
	"github.com/valeshop/access-intake/internal/server"
)

// Stage is the step a relayed request has reached. It is logged, never stored.
type Stage string

const (
	StageReceived      Stage = "received"
	StageValidated     Stage = "validated"
	StageForwarding    Stage = "forwarding"
	StageForwarded     Stage = "forwarded"
	StageForwardFailed Stage = "forward_failed"
)

// ErrForwardFailed is returned when the webhook did not accept the request.
var ErrForwardFailed = errors.New("failed to forward access request")

// Sender delivers a JSON payload to the webhook.
type Sender interface {
	Send(ctx context.Context, payload any) error
}

type AccessRequestService struct {
	server *server.Server
	sender Sender
}

func NewAccessRequestService(s *server.Server, sender Sender) *AccessRequestService {
	return &AccessRequestService{
		server: s,
		sender: sender,
	}
}

// Forward sends req to the webhook exactly once.
//
// The returned error wraps ErrForwardFailed and the downstream cause; callers
// must log it and answer with a generic message.
func (s *AccessRequestService) Forward(ctx context.Context, logger *zerolog.Logger, req *model.AccessRequest) error {
	log := logger.With().
		Str("application", req.Application).
		Str("duration_hours", req.DurationHours.String()).
		Logger()

	log.Info().Str("stage", string(StageForwarding)).Msg("forwarding access request")

	start := time.Now()
	err := s.sender.Send(ctx, req)
	elapsed := time.Since(start)

	if txn := newrelic.FromContext(ctx); txn != nil {
		txn.AddAttribute("webhook.duration_ms", elapsed.Milliseconds())
		txn.AddAttribute("webhook.success", err == nil)
	}

	if threshold := s.server.Config.Observability.Logging.SlowWebhookThreshold; threshold > 0 && elapsed > threshold {
		log.Warn().
			Dur("duration", elapsed).
			Dur("threshold", threshold).
			Msg("slow webhook call")
	}

	if err != nil {
		event := log.Error().
			Err(err).
			Str("stage", string(StageForwardFailed)).
			Dur("duration", elapsed)

		var statusErr *webhook.StatusError
		if errors.As(err, &statusErr) {
			event = event.
				Int("webhook_status", statusErr.StatusCode).
				Str("webhook_body", statusErr.Body)
		}
		event.Msg("webhook rejected access request")

		s.recordFailure(req, err)

		return errors.Wrapf(ErrForwardFailed, "%v", err)
	}

	log.Info().
		Str("stage", string(StageForwarded)).
		Dur("duration", elapsed).
		Msg("access request forwarded")

	return nil
}

func (s *AccessRequestService) recordFailure(req *model.AccessRequest, err error) {
	app := s.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("WebhookForwardError", map[string]any{
		"application":   req.Application,
		"error_message": err.Error(),
	})
}
