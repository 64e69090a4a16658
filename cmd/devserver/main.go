// Command devserver serves the relay over plain HTTP at POST /predict for local
// development. Variables from a .env file in the working directory are loaded
// before the environment is read.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmorgan81/wastebot/internal/config"
	"github.com/dmorgan81/wastebot/internal/inject"
	"github.com/dmorgan81/wastebot/internal/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	cfg, err := config.Load()
	logger := log.New(os.Stderr, log.ParseLevel(cfg.LogLevel))
	if err != nil {
		logger.Error("could not load configuration", "error", err)
		os.Exit(1)
	}
	if envErr != nil {
		logger.Debug("no .env file loaded", "error", envErr)
	}

	ctx := log.NewContext(context.Background(), logger)
	injector := inject.Setup(ctx, cfg)
	handler, err := inject.Warm(ctx, injector)
	if err != nil {
		logger.Error("could not start", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.Logger, middleware.Recoverer)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(log.NewContext(r.Context(),
				logger.With("requestId", middleware.GetReqID(r.Context())))))
		})
	})
	router.Handle("/predict", handler)

	server := http.Server{Addr: cfg.Addr, Handler: router}
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signalChan
	logger.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	_ = injector.Shutdown()
}
