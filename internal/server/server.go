// Package server owns the process lifecycle: it serves HTTP and gRPC until
// the context is cancelled or a termination signal arrives, then drains
// both.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bcama/linqlab/config"
	lgrpc "github.com/bcama/linqlab/pkg/grpc"
	"github.com/bcama/linqlab/pkg/logger"
)

// Run blocks until ctx is done, SIGINT/SIGTERM is received, or a listener
// fails. A clean shutdown returns nil.
func Run(ctx context.Context, handler http.Handler, check lgrpc.Checker) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", ":"+config.AppPort())
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}

	grpcSrv, _, err := lgrpc.Start(config.GRPCPort(), check)
	if err != nil {
		_ = lis.Close()
		return err
	}

	httpSrv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", lis.Addr().String(), "env", config.AppEnv())
		if err := httpSrv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		lgrpc.Stop(grpcSrv)
		return fmt.Errorf("server: serve: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout())
	defer cancel()

	lgrpc.Stop(grpcSrv)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
