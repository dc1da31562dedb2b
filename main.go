package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"changegate/internal/app"
	"changegate/internal/config"
	"changegate/internal/observability"
)

func main() {
	log.Init(logrus.InfoLevel)

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	if cfg.Tracing.JaegerEndpoint != "" {
		tp := observability.ConfigureTraceProvider(cfg.Tracing.JaegerEndpoint)
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	db, err := sqlx.Open("postgres", cfg.Postgres.URL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to postgres")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	defer redisClient.Close()

	watermillLogger := watermill.NewStdLogger(false, false)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.NewApp(cfg, watermillLogger, db, redisClient)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize application")
	}

	if err := a.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("application stopped with error")
	}
}
