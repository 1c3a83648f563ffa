package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atcampus/internal/api"
	"github.com/muhammadolammi/atcampus/internal/auth"
	"github.com/muhammadolammi/atcampus/internal/config"
	"github.com/muhammadolammi/atcampus/internal/database"
	"github.com/muhammadolammi/atcampus/internal/events"
	"github.com/muhammadolammi/atcampus/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// runServer serves the API until ctx is cancelled.
func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := openDB(ctx, cfg.DBURL)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("error connecting to redis: %w", err)
	}

	opts := api.Options{
		Store:        database.NewStore(db),
		Sessions:     auth.NewRedisSessions(rdb, cfg.SessionTTL),
		Logger:       logger,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		CORSOrigins:  cfg.CORSOrigins,
	}

	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			return fmt.Errorf("error connecting to RabbitMQ: %w", err)
		}
		defer conn.Close()
		publisher, err := events.NewAMQPPublisher(conn)
		if err != nil {
			return err
		}
		opts.Events = publisher
	} else {
		logger.Warn("RABBITMQ_URL not set, events will not be published")
	}

	if cfg.StorageEnabled() {
		bucket, err := storage.NewR2Bucket(ctx, cfg.R2)
		if err != nil {
			return err
		}
		opts.Bucket = bucket
	} else {
		logger.Warn("R2 storage not configured, resume uploads are disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(opts).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
