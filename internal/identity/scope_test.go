package identity

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"changegate/internal/entities"
)

const (
	captureQuery     = `SELECT coalesce(current_setting('role', true), ''), coalesce(current_setting($1, true), '')`
	impersonateQuery = `SELECT set_config('role', $1, false), set_config($2, $3, false)`
)

func newTestScope(t *testing.T) (*Scope, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn, err := sqlx.NewDb(db, "sqlmock").Connx(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewScope(conn, "authenticated"), mock
}

func expectCapture(mock sqlmock.Sqlmock, prevRole, prevUser string) {
	mock.ExpectQuery(regexp.QuoteMeta(captureQuery)).
		WithArgs(UserClaimSetting).
		WillReturnRows(sqlmock.NewRows([]string{"role", "user"}).AddRow(prevRole, prevUser))
}

func TestExecuteAsUserImpersonatesAndRestores(t *testing.T) {
	scope, mock := newTestScope(t)

	expectCapture(mock, "none", "")
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("authenticated", UserClaimSetting, "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("none", UserClaimSetting, "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	called := false
	err := scope.ExecuteAsUser(context.Background(), "alice", func(ctx context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteAsUserRestoresPreviousIdentity(t *testing.T) {
	scope, mock := newTestScope(t)

	// a previous impersonation left its identity on the connection
	expectCapture(mock, "authenticated", "bob")
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("authenticated", UserClaimSetting, "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("authenticated", UserClaimSetting, "bob").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := scope.ExecuteAsUser(context.Background(), "alice", func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteAsUserRestoresOnCallbackError(t *testing.T) {
	scope, mock := newTestScope(t)

	expectCapture(mock, "none", "")
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("authenticated", UserClaimSetting, "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("none", UserClaimSetting, "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	callbackErr := errors.New("oracle query failed")
	err := scope.ExecuteAsUser(context.Background(), "alice", func(ctx context.Context) error {
		return callbackErr
	})

	require.ErrorIs(t, err, callbackErr)
	assert.NotErrorIs(t, err, entities.ErrIdentityNotRestored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteAsUserEscalatesFailedRestore(t *testing.T) {
	scope, mock := newTestScope(t)

	expectCapture(mock, "none", "")
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("authenticated", UserClaimSetting, "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("none", UserClaimSetting, "").
		WillReturnError(errors.New("connection lost"))

	err := scope.ExecuteAsUser(context.Background(), "alice", func(ctx context.Context) error {
		return nil
	})

	require.ErrorIs(t, err, entities.ErrIdentityNotRestored)
}

func TestExecuteAsUserKeepsCallbackErrorNextToFailedRestore(t *testing.T) {
	scope, mock := newTestScope(t)

	expectCapture(mock, "none", "")
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("authenticated", UserClaimSetting, "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WillReturnError(errors.New("connection lost"))

	callbackErr := errors.New("oracle query failed")
	err := scope.ExecuteAsUser(context.Background(), "alice", func(ctx context.Context) error {
		return callbackErr
	})

	require.ErrorIs(t, err, entities.ErrIdentityNotRestored)
	require.ErrorIs(t, err, callbackErr)
}

func TestExecuteAsUserRestoresOnPanic(t *testing.T) {
	scope, mock := newTestScope(t)

	expectCapture(mock, "none", "")
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("authenticated", UserClaimSetting, "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(impersonateQuery)).
		WithArgs("none", UserClaimSetting, "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.Panics(t, func() {
		_ = scope.ExecuteAsUser(context.Background(), "alice", func(ctx context.Context) error {
			panic("oracle blew up")
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteAsUserFailsWhenCaptureFails(t *testing.T) {
	scope, mock := newTestScope(t)

	mock.ExpectQuery(regexp.QuoteMeta(captureQuery)).
		WithArgs(UserClaimSetting).
		WillReturnError(errors.New("connection refused"))

	err := scope.ExecuteAsUser(context.Background(), "alice", func(ctx context.Context) error {
		t.Fatal("callback must not run without impersonation")
		return nil
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
