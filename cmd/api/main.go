package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uepex/internal/account"
	"uepex/internal/auth"
	"uepex/internal/config"
	"uepex/internal/export"
	"uepex/internal/handler"
	"uepex/internal/httpmiddleware"
	"uepex/internal/logging"
	"uepex/internal/metrics"
	"uepex/internal/queue"
	"uepex/internal/store"
	"uepex/internal/student"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.App) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database connected", "driver", db.Driver)

	studentRepo := student.NewRepository(db.Client)
	if err := studentRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	userRepo := account.NewRepository(db.Client)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	accounts := account.NewService(userRepo, m)
	if created, err := accounts.EnsureUser(ctx, "admin", cfg.SeedAdminPassword, account.RoleAdmin); err != nil {
		return err
	} else if created {
		slog.Info("seeded admin user")
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()

	var snapshots export.Snapshots
	if redisClient != nil {
		snapshots = export.NewRedisSnapshots(redisClient.Client, "", cfg.SnapshotTTL)
	}

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, queue.DefaultKey)
	}

	// Without a snapshot store there is nothing to invalidate or rebuild.
	var notifier student.Notifier
	if snapshots != nil {
		notifier = export.NewNotifier(snapshots, q)
	}

	students := student.NewService(student.NewValidator(student.DefaultCatalog()), studentRepo, notifier, m)
	exports := export.NewService(students, snapshots, nil, m)

	if notifier != nil && cfg.QueueBackend == "memory" {
		go func() {
			logger := slog.Default().With("component", "worker")
			if err := export.RunWorker(ctx, q, exports, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("in-process worker stopped", "error", err)
			}
		}()
	}

	deps := handler.Deps{
		Students:     students,
		Exports:      exports,
		Accounts:     accounts,
		Tokens:       auth.NewIssuer(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSigningKey, cfg.AccessTTL),
		DB:           db,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		LoginLimiter: httpmiddleware.NewSimpleTokenBucket(cfg.LoginRateLimitPerMin, cfg.LoginRateLimitPerMin).GinMiddleware(handler.ErrorBody),
	}
	if redisClient != nil {
		deps.Redis = redisClient
	}

	r := gin.New()
	r.Use(httpmiddleware.RequestID())
	r.Use(handler.Recovery())
	r.Use(httpmiddleware.Logger("/healthz", "/metrics"))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(httpmiddleware.SecurityHeaders(cfg.Production()))
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware(handler.ErrorBody))
	handler.New(deps).Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.HTTPPort, "env", cfg.Env, "queue", cfg.QueueBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("server forced shutdown", "error", err)
	}
	slog.Info("server exited")
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", httpmiddleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", httpmiddleware.RequestIDHeader},
		MaxAge:        24 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
