// Package httpd implements the HTTP server for the deal aggregation
// service. It exposes the run trigger, artifact reads, health, and
// metrics endpoints.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/godeals/cmd/common"
	"github.com/jonesrussell/godeals/internal/api"
	"github.com/jonesrussell/godeals/internal/logger"
)

const (
	errorChannelBufferSize = 1
	defaultShutdownTimeout = 30 * time.Second
)

// Cmd represents the httpd command.
var Cmd = &cobra.Command{
	Use:   "httpd",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server exposing the pipeline trigger and artifact
read endpoints. The server runs until interrupted with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return Start(cmd.Context())
	},
}

// Start starts the HTTP server and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start(ctx context.Context) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	registry := prometheus.NewRegistry()
	p, store, err := common.CreatePipeline(ctx, deps, registry)
	if err != nil {
		return err
	}

	router := api.SetupRouter(deps.Logger, p, store, deps.Config, registry)

	serverCfg := deps.Config.GetServerConfig()
	server := &http.Server{
		Addr:         serverCfg.Address,
		Handler:      router,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.IdleTimeout,
	}

	deps.Logger.Info("Starting HTTP server", "addr", serverCfg.Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runUntilInterrupt(ctx, deps.Logger, server, errChan)
}

// runUntilInterrupt blocks until a server error or shutdown signal.
func runUntilInterrupt(
	ctx context.Context,
	log logger.Interface,
	server *http.Server,
	errChan chan error,
) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case <-sigCtx.Done():
		return shutdownServer(log, server)
	}
}

// shutdownServer performs graceful shutdown of the HTTP server.
func shutdownServer(log logger.Interface, server *http.Server) error {
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
