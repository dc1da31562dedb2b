package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"changegate/internal/entities"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// subscriptionRow is the storage model; filters travel as jsonb.
type subscriptionRow struct {
	ID         uuid.UUID `db:"id"`
	UserID     string    `db:"user_id"`
	SchemaName string    `db:"schema_name"`
	TableName  string    `db:"table_name"`
	Filters    []byte    `db:"filters"`
	CreatedAt  time.Time `db:"created_at"`
}

type SubscriptionsRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewSubscriptionsRepo(db *sqlx.DB, getter *trmsqlx.CtxGetter) *SubscriptionsRepo {
	return &SubscriptionsRepo{db: db, getter: getter}
}

// Upsert writes a subscription, replacing the filters of an existing
// (user, entity) registration. One subscription per user-entity pair.
func (r *SubscriptionsRepo) Upsert(ctx context.Context, sub *entities.Subscription) (uuid.UUID, error) {
	filters, err := json.Marshal(sub.Filters)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal filters: %w", err)
	}

	query := `
		INSERT INTO subscriptions (id, user_id, schema_name, table_name, filters)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, schema_name, table_name)
		DO UPDATE SET filters = EXCLUDED.filters
		RETURNING id`

	var id uuid.UUID
	err = r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowxContext(ctx, query, sub.ID, sub.UserID, sub.Entity.Schema, sub.Entity.Name, filters).
		Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return id, nil
}

func (r *SubscriptionsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error) {
	query := `
		SELECT id, user_id, schema_name, table_name, filters, created_at
		FROM subscriptions
		WHERE id = $1`

	var row subscriptionRow
	err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return rowToSubscription(row)
}

// ListForEntity enumerates the active subscriptions on one entity. Called
// once per event evaluation; the engine tolerates read skew against
// concurrent writes.
func (r *SubscriptionsRepo) ListForEntity(ctx context.Context, entity entities.Entity) ([]entities.Subscription, error) {
	query := `
		SELECT id, user_id, schema_name, table_name, filters, created_at
		FROM subscriptions
		WHERE schema_name = $1 AND table_name = $2
		ORDER BY created_at`

	var rows []subscriptionRow
	err := r.getter.DefaultTrOrDB(ctx, r.db).SelectContext(ctx, &rows, query, entity.Schema, entity.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for %s: %w", entity, err)
	}

	subs := make([]entities.Subscription, 0, len(rows))
	for _, row := range rows {
		sub, err := rowToSubscription(row)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}

	return subs, nil
}

func (r *SubscriptionsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.getter.DefaultTrOrDB(ctx, r.db).
		ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionsRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.getter.DefaultTrOrDB(ctx, r.db).
		ExecContext(ctx, `DELETE FROM subscriptions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete subscriptions of user %q: %w", userID, err)
	}
	return res.RowsAffected()
}

// DeleteStale garbage-collects registrations older than the retention window.
func (r *SubscriptionsRepo) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := r.getter.DefaultTrOrDB(ctx, r.db).
		ExecContext(ctx, `DELETE FROM subscriptions WHERE created_at < now() - $1::interval`,
			fmt.Sprintf("%d seconds", int64(olderThan.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale subscriptions: %w", err)
	}
	return res.RowsAffected()
}

func rowToSubscription(row subscriptionRow) (*entities.Subscription, error) {
	var filters []entities.Filter
	if err := json.Unmarshal(row.Filters, &filters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filters of subscription %s: %w", row.ID, err)
	}

	return &entities.Subscription{
		ID:     row.ID,
		UserID: row.UserID,
		Entity: entities.Entity{
			Schema: row.SchemaName,
			Name:   row.TableName,
		},
		Filters:   filters,
		CreatedAt: row.CreatedAt,
	}, nil
}
