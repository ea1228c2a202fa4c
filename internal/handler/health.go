package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/valeshop/access-intake/internal/middleware"
	"github.com/valeshop/access-intake/internal/server"
)

// CheckWebhook is the name of the webhook configuration check.
const CheckWebhook = "webhook"

// HealthHandler exposes the endpoint uptime monitors and load balancers poll.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns relay status and the configured checks.
//
// The webhook is never called from here: a POST to it triggers the
// automation. The check only verifies the relay has a usable target.
//
// It returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	healthCfg := h.server.Config.Observability.HealthChecks

	if healthCfg.Enabled && slices.Contains(healthCfg.Checks, CheckWebhook) {
		target, err := url.Parse(h.server.Config.Webhook.URL)
		if err == nil && (target.Scheme != "http" && target.Scheme != "https" || target.Host == "") {
			err = fmt.Errorf("webhook url %q is not an absolute http(s) url", h.server.Config.Webhook.URL)
		}

		if err != nil {
			checks[CheckWebhook] = map[string]any{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			isHealthy = false

			logger.Error().Err(err).Msg("webhook health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":    CheckWebhook,
					"operation":     "health_check",
					"error_type":    "webhook_misconfigured",
					"error_message": err.Error(),
				})
			}
		} else {
			checks[CheckWebhook] = map[string]any{
				"status":  "healthy",
				"host":    target.Host,
				"timeout": h.server.Config.Webhook.Timeout.String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
