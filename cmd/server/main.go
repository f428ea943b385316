package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activity-portal/internal/activities"
	"activity-portal/internal/config"
	"activity-portal/internal/db"
	"activity-portal/internal/logger"
	"activity-portal/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	api, err := activities.NewClient(cfg.ActivitiesAPIURL, cfg.APITimeout())
	if err != nil {
		zlog.Fatal("activities client setup failed", zap.Error(err))
	}

	opts := []server.Option{server.WithLogger(zlog)}
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			zlog.Fatal("database connection failed", zap.Error(err))
		}
		if err := db.Migrate(conn, zlog); err != nil {
			zlog.Fatal("database migration failed", zap.Error(err))
		}
		opts = append(opts, server.WithDB(conn))
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			zlog.Fatal("redis ping failed", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		opts = append(opts, server.WithRedis(rdb))
	}

	srv := server.New(api, cfg, opts...)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("activity portal listening",
			zap.String("addr", httpServer.Addr),
			zap.String("activities_api", cfg.ActivitiesAPIURL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
	}
	zlog.Info("server stopped")
}
