package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dmorgan81/wastebot/internal/config"
	"github.com/dmorgan81/wastebot/internal/inject"
	"github.com/dmorgan81/wastebot/internal/log"
)

func main() {
	cfg, err := config.Load()
	logger := log.New(os.Stderr, log.ParseLevel(cfg.LogLevel))
	if err != nil {
		logger.Error("could not load configuration", "error", err)
		os.Exit(1)
	}

	ctx := log.NewContext(context.Background(), logger)
	injector := inject.Setup(ctx, cfg)
	handler, err := inject.Warm(ctx, injector)
	if err != nil {
		logger.Error("could not start", "error", err)
		os.Exit(1)
	}
	lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}
