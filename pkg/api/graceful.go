package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hexcrawl/c3net/pkg/logging"
)

// GracefulServer wraps an HTTP server with graceful shutdown on SIGINT and
// SIGTERM so an in-flight save is never cut off mid-write.
type GracefulServer struct {
	server       *http.Server
	log          logging.Logger
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// NewGracefulServer creates a graceful HTTP server around the given handler.
func NewGracefulServer(addr string, handler http.Handler, log logging.Logger) *GracefulServer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &GracefulServer{
		server: &http.Server{
			Addr:           addr,
			Handler:        handler,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    120 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		log:        log,
		shutdownCh: make(chan struct{}),
	}
}

// Start serves until the listener fails or a shutdown signal arrives.
func (gs *GracefulServer) Start() error {
	go gs.handleSignals()

	gs.log.Info("starting HTTP server", logging.String("addr", gs.server.Addr))
	if err := gs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown initiates a graceful shutdown. Safe to call more than once.
func (gs *GracefulServer) Shutdown(timeout time.Duration) error {
	var err error
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gs.log.Info("initiating graceful shutdown", logging.String("timeout", timeout.String()))
		if shutdownErr := gs.server.Shutdown(ctx); shutdownErr != nil {
			err = shutdownErr
			gs.log.Error("error during shutdown", logging.Err(shutdownErr))
		} else {
			gs.log.Info("server shutdown complete")
		}
	})
	return err
}

func (gs *GracefulServer) handleSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	gs.log.Info("received signal, starting graceful shutdown", logging.String("signal", sig.String()))
	if err := gs.Shutdown(30 * time.Second); err != nil {
		gs.log.Error("shutdown error", logging.Err(err))
		os.Exit(1)
	}
	os.Exit(0)
}

// ShutdownChannel returns a channel that closes when shutdown begins.
func (gs *GracefulServer) ShutdownChannel() <-chan struct{} {
	return gs.shutdownCh
}
