// Package server defines the core Server struct that composes the relay's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the outbound webhook client
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/valeshop/access-intake/internal/config"
	"github.com/valeshop/access-intake/internal/lib/webhook"
	loggerPkg "github.com/valeshop/access-intake/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. Handlers, services and middlewares
// receive it and read what they need from it.
type Server struct {
	// Config holds all environment/config values for the relay.
	Config *config.Config

	// Logger is the relay's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// Webhook posts accepted access requests to the automation webhook.
	Webhook *webhook.Client

	httpServer *http.Server
}

// New constructs a Server. It does not listen; that is done in
// SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	webhookClient := webhook.NewClient(&cfg.Webhook, logger)

	logger.Info().
		Str("webhook_url", webhookClient.URL()).
		Dur("webhook_timeout", webhookClient.Timeout()).
		Bool("strict_validation", cfg.Validation.Strict).
		Msg("webhook client ready")

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Webhook:       webhookClient,
	}, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
//
// It requires SetupHTTPServer to be called first. After Shutdown it returns
// http.ErrServerClosed.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections, waits for in-flight requests until
// ctx is done and flushes New Relic data.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.LoggerService.Shutdown()

	if s.httpServer == nil {
		return nil
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}
