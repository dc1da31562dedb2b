package oracle

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"changegate/internal/entities"
)

func newTestOracle(t *testing.T) (*Oracle, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn, err := sqlx.NewDb(db, "sqlmock").Connx(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return New(conn), mock
}

func notesRelation() *entities.Relation {
	return &entities.Relation{Schema: "public", Name: "notes", RLSEnabled: true}
}

func TestPrepareExistenceCheckQuotesIdentifiers(t *testing.T) {
	oracle, mock := newTestOracle(t)

	query := `SELECT EXISTS (SELECT 1 FROM "public"."notes" WHERE "id"::text = $1)`
	mock.ExpectPrepare(regexp.QuoteMeta(query))

	check, err := oracle.PrepareExistenceCheck(context.Background(), notesRelation(), []string{"id"})
	require.NoError(t, err)
	require.NotNil(t, check)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowExistsReportsOracleVerdict(t *testing.T) {
	oracle, mock := newTestOracle(t)

	query := `SELECT EXISTS (SELECT 1 FROM "public"."notes" WHERE "id"::text = $1)`
	prepared := mock.ExpectPrepare(regexp.QuoteMeta(query))
	prepared.ExpectQuery().
		WithArgs("10").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	prepared.ExpectQuery().
		WithArgs("11").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	check, err := oracle.PrepareExistenceCheck(context.Background(), notesRelation(), []string{"id"})
	require.NoError(t, err)

	visible, err := check.RowExists(context.Background(), []string{"10"})
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = check.RowExists(context.Background(), []string{"11"})
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestPrepareExistenceCheckCompositeKey(t *testing.T) {
	oracle, mock := newTestOracle(t)

	query := `SELECT EXISTS (SELECT 1 FROM "public"."notes" WHERE "pk1"::text = $1 AND "pk2"::text = $2)`
	prepared := mock.ExpectPrepare(regexp.QuoteMeta(query))
	prepared.ExpectQuery().
		WithArgs("87", "A").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	check, err := oracle.PrepareExistenceCheck(context.Background(), notesRelation(), []string{"pk1", "pk2"})
	require.NoError(t, err)

	visible, err := check.RowExists(context.Background(), []string{"87", "A"})
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestRowExistsRejectsKeyArityMismatch(t *testing.T) {
	oracle, mock := newTestOracle(t)

	query := `SELECT EXISTS (SELECT 1 FROM "public"."notes" WHERE "pk1"::text = $1 AND "pk2"::text = $2)`
	mock.ExpectPrepare(regexp.QuoteMeta(query))

	check, err := oracle.PrepareExistenceCheck(context.Background(), notesRelation(), []string{"pk1", "pk2"})
	require.NoError(t, err)

	_, err = check.RowExists(context.Background(), []string{"87"})
	require.Error(t, err)
}

func TestPrepareExistenceCheckRequiresKeyColumns(t *testing.T) {
	oracle, _ := newTestOracle(t)

	_, err := oracle.PrepareExistenceCheck(context.Background(), notesRelation(), nil)
	require.Error(t, err)
}
