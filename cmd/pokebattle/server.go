package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
	"github.com/tyoppar01/pokemon-battle-v3/internal/service"
)

const (
	sweepInterval   = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// startIdleSweeper expires battles nobody has touched for idle.
func startIdleSweeper(ctx context.Context, arena *service.Arena, idle time.Duration) {
	go arena.RunSweeper(ctx, sweepInterval, idle)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("Server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
