package subscriptions_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"changegate/internal/application/usecases/subscriptions"
	"changegate/internal/application/usecases/subscriptions/mocks"
	"changegate/internal/entities"
)

type usecaseFixture struct {
	repo    *mocks.MockSubscriptionsRepo
	catalog *mocks.MockCatalogRepo
	dbMock  sqlmock.Sqlmock
	usecase *subscriptions.Usecase
}

// newUsecaseFixture backs the transaction manager with a sqlmock database so
// the commit and rollback paths are observable without Postgres.
func newUsecaseFixture(t *testing.T) *usecaseFixture {
	ctrl := gomock.NewController(t)

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &usecaseFixture{
		repo:    mocks.NewMockSubscriptionsRepo(ctrl),
		catalog: mocks.NewMockCatalogRepo(ctrl),
		dbMock:  dbMock,
	}
	f.usecase = subscriptions.NewUsecase(
		f.repo,
		f.catalog,
		manager.Must(trmsqlx.NewDefaultFactory(sqlx.NewDb(db, "sqlmock"))),
		"authenticated",
	)

	return f
}

func notesRelation() *entities.Relation {
	return &entities.Relation{Schema: "public", Name: "notes", RLSEnabled: true}
}

func notesColumns() []entities.RelationColumn {
	return []entities.RelationColumn{
		{Name: "id", Type: "int8"},
		{Name: "body", Type: "text"},
	}
}

func notesEntity() entities.Entity {
	return entities.Entity{Schema: "public", Name: "notes"}
}

func TestCreateSubscription(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectCommit()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	f.catalog.EXPECT().SelectableColumns(gomock.Any(), gomock.Any(), "authenticated").Return(notesColumns(), nil)

	stored := uuid.New()
	f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *entities.Subscription) (uuid.UUID, error) {
			assert.Equal(t, "alice", sub.UserID)
			assert.Equal(t, notesEntity(), sub.Entity)
			return stored, nil
		})

	id, err := f.usecase.Create(context.Background(), "alice", notesEntity(), []entities.Filter{
		{ColumnName: "body", Op: "eq", Value: "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, stored, id)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestCreateSubscriptionUnknownEntity(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).
		Return(nil, &entities.EntityResolutionError{Entity: notesEntity(), Err: entities.ErrEntityNotFound})

	_, err := f.usecase.Create(context.Background(), "alice", notesEntity(), nil)

	require.ErrorIs(t, err, entities.ErrEntityNotFound)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestCreateSubscriptionWithoutFiltersSkipsGrantLookup(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectCommit()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	// no SelectableColumns expectation: nothing to validate
	f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)

	_, err := f.usecase.Create(context.Background(), "alice", notesEntity(), nil)
	require.NoError(t, err)
}

func TestCreateSubscriptionRejectsFilterOnUngrantedColumn(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	f.catalog.EXPECT().SelectableColumns(gomock.Any(), gomock.Any(), "authenticated").Return(notesColumns(), nil)

	_, err := f.usecase.Create(context.Background(), "alice", notesEntity(), []entities.Filter{
		{ColumnName: "secret", Op: "eq", Value: "x"},
	})

	var validationErr *entities.FilterValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "secret", validationErr.Column)

	// the rejection must not disclose whether the column exists at all
	assert.Equal(t, "column is not selectable by the subscribing role", validationErr.Reason)
}

func TestCreateSubscriptionRejectsUncoercibleValue(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	f.catalog.EXPECT().SelectableColumns(gomock.Any(), gomock.Any(), "authenticated").Return(notesColumns(), nil)

	_, err := f.usecase.Create(context.Background(), "alice", notesEntity(), []entities.Filter{
		{ColumnName: "id", Op: "gt", Value: "banana"},
	})

	var validationErr *entities.FilterValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "id", validationErr.Column)
}

func TestCreateSubscriptionRejectsUnknownOperator(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	f.catalog.EXPECT().SelectableColumns(gomock.Any(), gomock.Any(), "authenticated").Return(notesColumns(), nil)

	_, err := f.usecase.Create(context.Background(), "alice", notesEntity(), []entities.Filter{
		{ColumnName: "body", Op: "like", Value: "%x%"},
	})

	var validationErr *entities.FilterValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateSubscriptionValidationFailsFast(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	f.catalog.EXPECT().SelectableColumns(gomock.Any(), gomock.Any(), "authenticated").Return(notesColumns(), nil)

	// the first filter is bad, the second one is never reached
	_, err := f.usecase.Create(context.Background(), "alice", notesEntity(), []entities.Filter{
		{ColumnName: "id", Op: "eq", Value: "banana"},
		{ColumnName: "nope", Op: "eq", Value: "x"},
	})

	var validationErr *entities.FilterValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "id", validationErr.Column)
}

func TestUpdateSubscriptionRevalidatesFilters(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectCommit()

	id := uuid.New()
	existing := &entities.Subscription{
		ID:     id,
		UserID: "alice",
		Entity: notesEntity(),
	}

	f.repo.EXPECT().GetByID(gomock.Any(), id).Return(existing, nil)
	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	f.catalog.EXPECT().SelectableColumns(gomock.Any(), gomock.Any(), "authenticated").Return(notesColumns(), nil)
	f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *entities.Subscription) (uuid.UUID, error) {
			require.Len(t, sub.Filters, 1)
			return id, nil
		})

	err := f.usecase.Update(context.Background(), id, []entities.Filter{
		{ColumnName: "id", Op: "lte", Value: "100"},
	})
	require.NoError(t, err)
}

func TestCreateSubscriptionUpsertErrorRollsBack(t *testing.T) {
	f := newUsecaseFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	f.catalog.EXPECT().ResolveRelation(gomock.Any(), notesEntity()).Return(notesRelation(), nil)
	f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("unique violation"))

	_, err := f.usecase.Create(context.Background(), "alice", notesEntity(), nil)
	require.Error(t, err)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}
