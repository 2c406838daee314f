package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/danielhkuo/ridepolls/backend"
	"github.com/danielhkuo/ridepolls/cliparse"
	"github.com/danielhkuo/ridepolls/logging"
	"github.com/danielhkuo/ridepolls/middleware"
	"github.com/danielhkuo/ridepolls/router"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing flags:", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	middleware.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the store and create the schema for SQL backends
	b, err := backend.Open(ctx, cfg.Store, true, logger)
	if err != nil {
		logger.Fatal("store setup failed", zap.Error(err))
	}
	defer b.Close()

	if cfg.DeviceCookieSecret == "" {
		logger.Warn("DEVICE_COOKIE_SECRET not set, device cookies are unsigned")
	}
	if len(cfg.AllowedOrigins) == 0 {
		logger.Warn("ALLOWED_ORIGINS not set, cross-origin requests carry no device cookie")
	}

	server := &http.Server{
		Handler:           router.NewRouter(b.Store, cfg, logger),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Listening", zap.Int("port", cfg.Port))
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server closed", zap.Error(err))
		return
	}
	logger.Info("Server closed")
}
