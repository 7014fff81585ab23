package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"uepex/internal/config"
	"uepex/internal/export"
	"uepex/internal/logging"
	"uepex/internal/queue"
	"uepex/internal/store"
	"uepex/internal/student"
)

// Worker consumes registration events and rebuilds the cached CSV export.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	logger := slog.Default().With("component", "worker")

	if cfg.QueueBackend != "redis" {
		logger.Error("worker requires QUEUE_BACKEND=redis; the memory queue is consumed inside the api process")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	if !redisClient.Healthy(ctx) {
		logger.Warn("redis not reachable yet, consumer will retry")
	}

	repo := student.NewRepository(db.Client)
	students := student.NewService(nil, repo, nil, nil)
	exports := export.NewService(students, export.NewRedisSnapshots(redisClient.Client, "", cfg.SnapshotTTL), nil, nil)

	if snap, err := exports.RebuildCSV(ctx); err != nil {
		logger.Warn("initial csv snapshot failed", "error", err)
	} else {
		logger.Info("initial csv snapshot built", "version", snap.Version, "count", snap.Count)
	}

	logger.Info("worker started, waiting for messages", "key", queue.DefaultKey)
	err = export.RunWorker(ctx, queue.NewRedisQueue(redisClient.Client, queue.DefaultKey), exports, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
