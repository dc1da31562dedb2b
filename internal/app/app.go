package app

import (
	"context"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	wmessage "github.com/ThreeDotsLabs/watermill/message"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"changegate/internal/application/usecases/evaluation"
	"changegate/internal/application/usecases/subscriptions"
	"changegate/internal/config"
	httpiface "changegate/internal/interfaces/http"
	"changegate/internal/interfaces/message"
	"changegate/internal/interfaces/message/events"
	"changegate/internal/outbox"
	"changegate/internal/reporting"
	"changegate/internal/repository"
)

type App struct {
	cfg             *config.Config
	watermillLogger watermill.LoggerAdapter
	logger          zerolog.Logger

	db        *sqlx.DB
	router    *wmessage.Router
	forwarder *outbox.Forwarder
	srv       *httpiface.Server

	subscriptionsUsecase *subscriptions.Usecase
}

func NewApp(
	cfg *config.Config,
	watermillLogger watermill.LoggerAdapter,
	db *sqlx.DB,
	redisClient *redis.Client,
) (*App, error) {
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))
	trGetter := trmsqlx.DefaultCtxGetter

	catalogRepo := repository.NewCatalogRepo(db)
	subscriptionsRepo := repository.NewSubscriptionsRepo(db, trGetter)

	reportingLog := reporting.NewLog(cfg.ReportingBufferSize)

	subscriptionsUsecase := subscriptions.NewUsecase(
		subscriptionsRepo,
		catalogRepo,
		trManager,
		cfg.Roles.Viewer,
	)

	evaluateUsecase := evaluation.NewEvaluateChangeUsecase(
		db,
		catalogRepo,
		subscriptionsRepo,
		reportingLog,
		trManager,
		trGetter,
		watermillLogger,
		cfg.Roles.Viewer,
		cfg.Roles.Subscriber,
	)

	changeStreamSubscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        redisClient,
		ConsumerGroup: cfg.Stream.ConsumerGroup,
	}, watermillLogger)
	if err != nil {
		return nil, err
	}

	router, err := message.NewRouter(
		watermillLogger,
		cfg.Stream.ChangeTopic,
		changeStreamSubscriber,
		events.NewHandler(evaluateUsecase),
	)
	if err != nil {
		return nil, err
	}

	fwd, err := outbox.NewForwarder(db, redisClient, watermillLogger)
	if err != nil {
		return nil, err
	}

	srv := httpiface.NewServer(
		cfg.HTTP.Addr,
		subscriptionsUsecase,
		reportingLog,
		router.IsRunning,
	)

	return &App{
		cfg:                  cfg,
		watermillLogger:      watermillLogger,
		logger:               zerolog.New(os.Stdout),
		db:                   db,
		router:               router,
		forwarder:            fwd,
		srv:                  srv,
		subscriptionsUsecase: subscriptionsUsecase,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := repository.InitializeDBSchema(a.db)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Msg("starting router")

		return a.router.Run(ctx)
	})

	g.Go(func() error {
		a.logger.Info().Msg("starting outbox forwarder")

		return a.forwarder.Run(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		a.logger.Info().Msg("router is running")

		a.logger.Info().Msg("starting server")
		return a.srv.Start()
	})

	g.Go(func() error {
		return a.runSubscriptionGC(ctx)
	})

	g.Go(func() error {
		// Shut down
		<-ctx.Done()

		err := a.srv.Stop(ctx)
		if err != nil {
			a.logger.Err(err).Msg("error stopping server")
		}

		return err
	})

	// Will block until all goroutines finish
	return g.Wait()
}

// runSubscriptionGC periodically drops subscriptions older than the
// configured TTL, so clients that never renewed stop costing oracle queries.
func (a *App) runSubscriptionGC(ctx context.Context) error {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			deleted, err := a.subscriptionsUsecase.DeleteStale(ctx, a.cfg.SubscriptionTTL.Std())
			if err != nil {
				a.logger.Err(err).Msg("subscription garbage collection failed")
				continue
			}
			if deleted > 0 {
				a.logger.Info().Int64("deleted", deleted).Msg("removed stale subscriptions")
			}
		}
	}
}
