// Command relay serves the access-request form and forwards submitted
// requests to the automation webhook.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valeshop/access-intake/internal/config"
	"github.com/valeshop/access-intake/internal/handler"
	"github.com/valeshop/access-intake/internal/logger"
	"github.com/valeshop/access-intake/internal/middleware"
	"github.com/valeshop/access-intake/internal/router"
	"github.com/valeshop/access-intake/internal/server"
	"github.com/valeshop/access-intake/internal/service"
)

const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// No logger yet.
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return 1
	}

	services, err := service.NewServices(srv)
	if err != nil {
		log.Error().Err(err).Msg("failed to create services")
		loggerService.Shutdown()
		return 1
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	srv.SetupHTTPServer(router.NewRouter(handlers, middlewares))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			loggerService.Shutdown()
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, stopping relay")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return 1
	}

	log.Info().Msg("relay stopped")
	return 0
}
