package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves the metrics endpoint over HTTP
type Server struct {
	server *http.Server
	logger *zap.Logger
	done   chan struct{}
}

// NewServer creates a metrics server for the given registry
func NewServer(listenAddress string, registry *prometheus.Registry, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &Server{
		server: &http.Server{
			Addr:              listenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() (net.Addr, error) {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	s.logger.Info("Metrics server started", zap.String("address", listener.Addr().String()))
	return listener.Addr(), nil
}

// Stop shuts the server down and waits for it to finish
func (s *Server) Stop(ctx context.Context) error {
	if s.done == nil {
		return nil
	}

	err := s.server.Shutdown(ctx)
	<-s.done
	s.logger.Info("Metrics server stopped")
	return err
}
