package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fondos/internal/backend"
	"fondos/internal/config"
	apphttp "fondos/internal/http"
	applog "fondos/internal/log"
	"fondos/internal/services"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldError, err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldError, err.Error())
		os.Exit(1)
	}
	result, err := backend.New(backendCfg, logger)
	if err != nil {
		logger.Error("Failed to initialize record store",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldBackend, cfg.DataBackend,
			applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Record store cleanup error",
				applog.FieldComponent, applog.ComponentApp,
				applog.FieldError, err.Error())
		}
	}()

	ledger := services.NewLedger(ctx, result.Store)
	srv := apphttp.NewServer(":"+cfg.Port, ledger, cfg.FoundationName)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fondos server",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully",
		applog.FieldComponent, applog.ComponentApp)
}
