package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/salvadodental/booking-api/internal/config"
	"github.com/salvadodental/booking-api/internal/repository/postgres"
	"github.com/salvadodental/booking-api/pkg/logger"
	"github.com/salvadodental/booking-api/pkg/messaging/redis"
	"github.com/salvadodental/booking-api/pkg/worker"
)

// The worker drains the appointments outbox into the Redis broker so
// downstream consumers (reminders, analytics) see lifecycle events without
// coupling to the API process.
func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.ZL)
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:    cfg.Outbox.BatchSize,
			PollInterval: time.Duration(cfg.Outbox.PollIntervalSeconds) * time.Second,
		},
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processor.Start(ctx)
}
