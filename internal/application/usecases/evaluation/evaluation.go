package evaluation

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	trmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jmoiron/sqlx"

	"changegate/internal/engine"
	"changegate/internal/entities"
	"changegate/internal/idempotency"
	"changegate/internal/identity"
	"changegate/internal/interfaces/message/events"
	"changegate/internal/oracle"
	"changegate/internal/outbox"
	"changegate/internal/reporting"
)

// EvaluateChangeUsecase processes one captured change event end to end:
// evaluate visibility, record the result on the reporting surface, and hand
// the annotated copy to the outbox for delivery.
//
// Every evaluation runs on its own pooled connection. The connection carries
// the ambient identity the oracle impersonates, so it is exclusively owned by
// the evaluation for its whole duration.
type EvaluateChangeUsecase struct {
	db              *sqlx.DB
	catalog         engine.CatalogRepository
	subscriptions   engine.SubscriptionsRepository
	reportingLog    *reporting.Log
	trManager       *trmanager.Manager
	trGetter        *trmsqlx.CtxGetter
	watermillLogger watermill.LoggerAdapter
	viewerRole      string
	subscriberRole  string
}

func NewEvaluateChangeUsecase(
	db *sqlx.DB,
	catalog engine.CatalogRepository,
	subscriptions engine.SubscriptionsRepository,
	reportingLog *reporting.Log,
	trManager *trmanager.Manager,
	trGetter *trmsqlx.CtxGetter,
	watermillLogger watermill.LoggerAdapter,
	viewerRole string,
	subscriberRole string,
) *EvaluateChangeUsecase {
	return &EvaluateChangeUsecase{
		db:              db,
		catalog:         catalog,
		subscriptions:   subscriptions,
		reportingLog:    reportingLog,
		trManager:       trManager,
		trGetter:        trGetter,
		watermillLogger: watermillLogger,
		viewerRole:      viewerRole,
		subscriberRole:  subscriberRole,
	}
}

func (u *EvaluateChangeUsecase) HandleChange(ctx context.Context, event *entities.ChangeEvent) error {
	conn, err := u.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	scope := identity.NewScope(conn, u.subscriberRole)
	eng := engine.New(u.catalog, u.subscriptions, oracle.New(conn), scope, u.viewerRole)

	result, err := eng.Evaluate(ctx, event)
	if errors.Is(err, entities.ErrIdentityNotRestored) {
		// The connection may still carry an impersonated identity. Poison it
		// so the pool discards it instead of lending it to unrelated work.
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		return err
	}
	if err != nil {
		return err
	}

	u.reportingLog.Append(result)

	for _, evalErr := range result.Errors {
		log.FromContext(ctx).
			WithField("entity", event.Entity().String()).
			WithField("error", evalErr).
			Warn("Subscriber excluded from change event")
	}

	return u.publish(ctx, event, result)
}

// publish stores the annotated event in the outbox within one transaction;
// the forwarder relays it to the stream.
func (u *EvaluateChangeUsecase) publish(ctx context.Context, event *entities.ChangeEvent, result *entities.EvaluationResult) error {
	return u.trManager.Do(ctx, func(ctx context.Context) error {
		tr := u.trGetter.DefaultTrOrDB(ctx, nil)
		if tr == nil {
			return fmt.Errorf("failed to get transaction from context")
		}

		publisher, err := outbox.NewPublisher(tr, u.watermillLogger)
		if err != nil {
			return fmt.Errorf("failed to create event publisher: %w", err)
		}

		eb, err := events.NewEventBus(publisher, u.watermillLogger)
		if err != nil {
			return fmt.Errorf("failed to create event bus: %w", err)
		}

		return eb.Publish(ctx, entities.ChangeAnnotated_v1{
			Header: entities.NewEventHeaderWithIdempotencyKey(
				idempotency.GetKey(ctx) + event.Entity().String(),
			),
			Change: result.Annotated,
		})
	})
}
