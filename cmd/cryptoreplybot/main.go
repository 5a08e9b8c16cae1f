package main

import (
	"context"
	"flag"
	"os"

	"CryptoReplyBot/internal/app"
	"CryptoReplyBot/internal/config"
	"CryptoReplyBot/internal/logging"
)

func main() {
	maxReplies := flag.Int("max-replies", 0, "override the maximum replies posted this run")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	if *maxReplies > 0 {
		cfg.Reply.MaxReplies = *maxReplies
	}

	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
