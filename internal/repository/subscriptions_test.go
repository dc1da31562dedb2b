package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"changegate/internal/entities"
	"changegate/internal/repository"
)

var db *sqlx.DB
var getDbOnce sync.Once

func getDb(t *testing.T) *sqlx.DB {
	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL is not set")
	}

	getDbOnce.Do(func() {
		var err error
		db, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}
	})
	return db
}

func setupTestDB(t *testing.T) {
	require.NoError(t, repository.InitializeDBSchema(getDb(t)))
}

func cleanupTestDB(t *testing.T) {
	_, err := getDb(t).Exec("TRUNCATE TABLE subscriptions")
	require.NoError(t, err)
}

func notesSubscription(userID string) *entities.Subscription {
	return &entities.Subscription{
		ID:     uuid.New(),
		UserID: userID,
		Entity: entities.Entity{Schema: "public", Name: "notes"},
		Filters: []entities.Filter{
			{ColumnName: "body", Op: "eq", Value: "hello"},
		},
	}
}

func TestSubscriptionsRepo_Integration(t *testing.T) {
	setupTestDB(t)
	t.Cleanup(func() { cleanupTestDB(t) })

	repo := repository.NewSubscriptionsRepo(getDb(t), trmsqlx.DefaultCtxGetter)
	ctx := context.Background()

	t.Run("upsert and read back", func(t *testing.T) {
		sub := notesSubscription("alice")

		id, err := repo.Upsert(ctx, sub)
		require.NoError(t, err)
		require.Equal(t, sub.ID, id)

		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.UserID)
		assert.Equal(t, sub.Entity, got.Entity)
		assert.Equal(t, sub.Filters, got.Filters)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("upsert replaces filters for the same user and entity", func(t *testing.T) {
		first := notesSubscription("bob")
		firstID, err := repo.Upsert(ctx, first)
		require.NoError(t, err)

		second := notesSubscription("bob")
		second.Filters = []entities.Filter{
			{ColumnName: "body", Op: "neq", Value: "bye"},
		}
		secondID, err := repo.Upsert(ctx, second)
		require.NoError(t, err)

		// the existing registration is kept, only its filters change
		assert.Equal(t, firstID, secondID)

		got, err := repo.GetByID(ctx, firstID)
		require.NoError(t, err)
		assert.Equal(t, second.Filters, got.Filters)
	})

	t.Run("list for entity", func(t *testing.T) {
		subs, err := repo.ListForEntity(ctx, entities.Entity{Schema: "public", Name: "notes"})
		require.NoError(t, err)
		assert.Len(t, subs, 2)

		subs, err = repo.ListForEntity(ctx, entities.Entity{Schema: "public", Name: "unknown"})
		require.NoError(t, err)
		assert.Empty(t, subs)
	})

	t.Run("delete", func(t *testing.T) {
		sub := notesSubscription("carol")
		id, err := repo.Upsert(ctx, sub)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))

		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrSubscriptionNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrSubscriptionNotFound)
	})

	t.Run("delete by user", func(t *testing.T) {
		deleted, err := repo.DeleteByUser(ctx, "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)

		deleted, err = repo.DeleteByUser(ctx, "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 0, deleted)
	})

	t.Run("delete stale keeps fresh subscriptions", func(t *testing.T) {
		sub := notesSubscription("dave")
		id, err := repo.Upsert(ctx, sub)
		require.NoError(t, err)

		deleted, err := repo.DeleteStale(ctx, 24*time.Hour)
		require.NoError(t, err)
		assert.EqualValues(t, 0, deleted)

		_, err = repo.GetByID(ctx, id)
		require.NoError(t, err)
	})
}
