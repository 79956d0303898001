package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashathullah/voter-shield/internal/config"
)

// Server is the optional /metrics HTTP endpoint (spec §9 ambient stack).
type Server struct {
	httpServer *http.Server
}

// NewServer builds (but does not start) a metrics server bound to
// cfg.Addr, with cfg.Timeout applied as both the read and write timeout.
func NewServer(cfg config.MetricsConfig) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{httpServer: &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}}
}

// Start runs the server until ctx is cancelled, then shuts it down
// gracefully. It returns nil on a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics: serving: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		return s.httpServer.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
