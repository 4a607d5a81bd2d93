package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericogr/pocket-arena/internal/config"
	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/ericogr/pocket-arena/internal/service"
)

const shutdownTimeout = 10 * time.Second

// serve runs the HTTP server and the idle-battle sweeper until ctx is
// cancelled or either of them fails.
func serve(ctx context.Context, cfg config.Server, handler http.Handler, manager *service.Manager) error {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return manager.RunSweeper(gctx, cfg.Sweep())
	})

	return g.Wait()
}
