// Package httpapi exposes the BusinessAPI as a JSON HTTP service.
package httpapi

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"

	"learning-tracker/internal/api"
	"learning-tracker/internal/config"
	"learning-tracker/internal/logging"
)

// Server serves the learning tracker HTTP API
type Server struct {
	api     api.BusinessAPI
	cfg     config.ServerConfig
	logger  *slog.Logger
	handler http.Handler
}

// NewServer builds the route table and middleware chain. A nil logger discards output.
func NewServer(businessAPI api.BusinessAPI, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{api: businessAPI, cfg: cfg, logger: logger}

	mux := http.NewServeMux()
	s.routes(mux)

	var h http.Handler = mux
	h = withTimeout(cfg.RequestTimeout, h)
	h = withRecover(logger, h)
	h = withLogging(logger, h)
	h = withRequestID(h)
	s.handler = h

	return s
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
