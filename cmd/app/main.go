package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"commentguard/internal/pkg/administrator"
	"commentguard/internal/pkg/config"
	"commentguard/internal/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	admin := administrator.New(cfg)

	// Create a cancellable context so we can gracefully shut down.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := admin.StartProcessing(ctx); err != nil {
		logger.Log.Fatal("failed to start batch processing")
	}

	// The comment-retrieval layer posts batches to /comments.
	go admin.StartService(cfg.ServerPort)

	// Listen for OS signals to gracefully shut down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	s := <-sigChan
	logger.Log.Info("received signal, shutting down: " + s.String())
	cancel()

	admin.Stop()
}
