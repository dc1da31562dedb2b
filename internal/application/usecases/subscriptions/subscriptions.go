package subscriptions

import (
	"context"
	"fmt"
	"time"

	trmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"

	"changegate/internal/entities"
)

//go:generate mockgen -destination=mocks/mock_subscriptions_repo.go -package=mocks changegate/internal/application/usecases/subscriptions SubscriptionsRepo
type SubscriptionsRepo interface {
	Upsert(ctx context.Context, sub *entities.Subscription) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error)
	ListForEntity(ctx context.Context, entity entities.Entity) ([]entities.Subscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

//go:generate mockgen -destination=mocks/mock_catalog_repo.go -package=mocks changegate/internal/application/usecases/subscriptions CatalogRepo
type CatalogRepo interface {
	ResolveRelation(ctx context.Context, entity entities.Entity) (*entities.Relation, error)
	SelectableColumns(ctx context.Context, rel *entities.Relation, role string) ([]entities.RelationColumn, error)
}

// Usecase owns the subscription write path. Filters are validated inside the
// same transaction as the write: a failing validation aborts the write on the
// first bad filter, so no partially validated subscription is ever stored.
type Usecase struct {
	repo       SubscriptionsRepo
	catalog    CatalogRepo
	trManager  *trmanager.Manager
	viewerRole string
}

func NewUsecase(
	repo SubscriptionsRepo,
	catalog CatalogRepo,
	trManager *trmanager.Manager,
	viewerRole string,
) *Usecase {
	return &Usecase{
		repo:       repo,
		catalog:    catalog,
		trManager:  trManager,
		viewerRole: viewerRole,
	}
}

func (u *Usecase) Create(ctx context.Context, userID string, entity entities.Entity, filters []entities.Filter) (uuid.UUID, error) {
	var id uuid.UUID
	err := u.trManager.Do(ctx, func(ctx context.Context) error {
		rel, err := u.catalog.ResolveRelation(ctx, entity)
		if err != nil {
			return err
		}

		if err := u.validateFilters(ctx, rel, filters); err != nil {
			return err
		}

		id, err = u.repo.Upsert(ctx, &entities.Subscription{
			ID:      uuid.New(),
			UserID:  userID,
			Entity:  rel.Entity(),
			Filters: filters,
		})
		return err
	})

	return id, err
}

func (u *Usecase) Update(ctx context.Context, id uuid.UUID, filters []entities.Filter) error {
	return u.trManager.Do(ctx, func(ctx context.Context) error {
		sub, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		rel, err := u.catalog.ResolveRelation(ctx, sub.Entity)
		if err != nil {
			return err
		}

		if err := u.validateFilters(ctx, rel, filters); err != nil {
			return err
		}

		sub.Filters = filters
		if _, err := u.repo.Upsert(ctx, sub); err != nil {
			return fmt.Errorf("failed to update subscription %s: %w", id, err)
		}
		return nil
	})
}

func (u *Usecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.repo.Delete(ctx, id)
}

func (u *Usecase) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return u.repo.DeleteByUser(ctx, userID)
}

func (u *Usecase) ListForEntity(ctx context.Context, entity entities.Entity) ([]entities.Subscription, error) {
	return u.repo.ListForEntity(ctx, entity)
}

// DeleteStale garbage-collects registrations of clients that never renewed.
func (u *Usecase) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	return u.repo.DeleteStale(ctx, olderThan)
}
