package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/translate_speech/internal/artifact"
	"github.com/Vovarama1992/translate_speech/internal/delivery"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web form and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, cleanup, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()

	pageHandler := delivery.NewPageHandler(a.pipeline, a.cfg.ArtifactServeOnce, a.zl)
	apiHandler := delivery.NewAPIHandler(a.pipeline, a.public, a.zl)
	audioHandler := delivery.NewAudioHandler(a.store, a.cfg.ArtifactServeOnce, a.zl)

	delivery.RegisterRoutes(r, pageHandler, apiHandler, audioHandler, delivery.RouteOptions{
		AccessToken:     a.cfg.AccessToken,
		RateLimitPerMin: a.cfg.RateLimitPerMin,
	})

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go artifact.RunJanitor(ctx, a.store, a.cfg.ArtifactTTL, a.cfg.ArtifactTTL/2, a.log)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + a.cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	a.zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: serviceName,
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	a.zl.Log(logger.LogEntry{Level: "info", Message: "shutting down", Service: serviceName})
	return srv.Shutdown(shutdownCtx)
}
