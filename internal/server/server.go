package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/gridedit/internal/server/handlers"
	"github.com/iudanet/gridedit/internal/server/middleware"
)

const (
	healthPath      = "/api/v1/health"
	shutdownTimeout = 10 * time.Second
)

// Server HTTP мост между хостом и контролом
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New собирает маршруты и middleware
func New(addr string, logger *slog.Logger, control *handlers.ControlHandler, health *handlers.HealthHandler) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, health.Health)
	control.Register(mux)

	handler := middleware.Recovery(logger)(middleware.Logging(logger, healthPath)(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Handler возвращает корневой обработчик
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
