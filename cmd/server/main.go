package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/pixelgate/server/internal/config"
	"codeberg.org/pixelgate/server/internal/logger"
	"github.com/getsentry/sentry-go"
)

// @title Pixelgate API
// @version 1.0
// @description Plan-gated text-to-image gateway
// @description
// @description Features:
// @description - One image per call, returned inline as a data URL
// @description - Resolution limits per subscription plan
// @description - Daily usage ceilings per caller
// @description - Stable error taxonomy for upstream failures

// @contact.name API Support
// @contact.url https://codeberg.org/pixelgate/server

// @securityDefinitions.apikey AdminKeyAuth
// @in header
// @name X-Admin-Secret
// @description Operator secret for /admin endpoints

func main() {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.SetDefault(logger.New(cfg.Environment, nil))
	logger.Info("starting pixelgate server", "version", version, "environment", cfg.Environment)

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "pixelgate@" + version,
			AttachStacktrace: true,
		})
		if err != nil {
			logger.ErrorErr(err, "failed to initialize sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     srv.router,
		ReadTimeout: 15 * time.Second,
		// generation holds the connection for up to the upstream timeout
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		logger.ErrorErr(err, "failed to start background jobs")
	}

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// in-flight generations get the full upstream timeout to finish
	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
