package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meshintel/enrich-engine/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP recommendation API",
	Long: `Serve starts the HTTP API exposing GET /api/recommendations and
GET /healthz. The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if err := cfg.Server.Validate(); err != nil {
			return fmt.Errorf("server config: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		eng := buildEngine(cfg)
		handler := api.NewHandler(eng.sources, cfg.MaxResults)

		httpServer := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: api.NewRouter(handler, logger),
		}

		g, gCtx := errgroup.WithContext(cmd.Context())

		g.Go(func() error {
			logger.Info("starting HTTP server", slog.String("addr", cfg.Server.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-quit:
				logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			case <-gCtx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown error", slog.String("error", err.Error()))
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8480)")

	rootCmd.AddCommand(serveCmd)
}
