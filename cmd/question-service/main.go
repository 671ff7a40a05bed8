// cmd/question-service/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"question-service/internal/common/aws"
	"question-service/internal/common/config"
	"question-service/internal/common/database"
	"question-service/internal/common/logger"
	"question-service/internal/common/observability"
	"question-service/internal/common/rabbitmq"
	"question-service/internal/matching"
	"question-service/internal/questions"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting question service",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected")

	// --- Init RabbitMQ with retry ---
	var bus *rabbitmq.Client
	err = retryWithBackoff(func() error {
		var err error
		bus, err = rabbitmq.Connect(cfg, log)
		return err
	}, 10, 2*time.Second, zapLog, "RabbitMQ connection")
	if err != nil {
		zapLog.Fatal("rabbitmq failed after retries", zap.Error(err))
	}
	defer bus.Close()
	zapLog.Info("RabbitMQ connected")

	// --- Optional critical-alert hook ---
	var alerter matching.Alerter
	if cfg.Alerts.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Alerts.Region, cfg.Alerts.TopicARN)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		alerter = snsClient
	}

	// --- Wire the matching path ---
	store := questions.NewPostgresStore(pg.DB, log)
	catalog := questions.NewCachedCatalog(store, rdb.Client,
		time.Duration(cfg.Matching.CatalogTTL)*time.Second, log)
	publisher := matching.NewRabbitReplyPublisher(bus, cfg.Matching)
	handler := matching.NewHandler(
		matching.LoadConfig(cfg.Matching),
		store, catalog, publisher, alerter, obs, log,
	)
	listener := matching.NewListener(bus, handler, cfg, log)

	// --- Metrics endpoint (default mux also carries the pprof handlers) ---
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("metrics endpoint listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, nil); err != nil {
				zapLog.Error("metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	runCtx, stop := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- listener.Run(runCtx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("shutting down", zap.String("signal", sig.String()))
		stop()
		select {
		case <-errCh:
		case <-time.After(10 * time.Second):
			zapLog.Warn("listener did not stop in time")
		}
	case err := <-errCh:
		stop()
		if err != nil {
			zapLog.Fatal("listener terminated", zap.Error(err))
		}
	}

	// give dispatched handlers a moment to publish their replies
	time.Sleep(500 * time.Millisecond)
	zapLog.Info("question service stopped")
}
