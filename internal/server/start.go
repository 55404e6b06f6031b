package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start serves HTTP on addr until an interrupt or terminate signal, then
// shuts down gracefully and releases the app's services.
func (s *Server) Start(addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting requests and closes every auth view.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.E.Shutdown(ctx)
	s.Services.Close()
	return err
}
