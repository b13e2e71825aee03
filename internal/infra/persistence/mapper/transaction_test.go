package mapper

import (
	"context"
	"regexp"
	"testing"

	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var updateBalanceQuery = regexp.QuoteMeta(`UPDATE accounts SET balance = CAST($1 AS NUMERIC) WHERE id = $2`)

func newMockTxManager(t *testing.T) (repository.TransactionManager, pgxmock.PgxPoolIface) {
	t.Helper()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	registry, err := DefaultRegistry()
	require.NoError(t, err)

	return NewTransactionManager(mockPool, registry), mockPool
}

func TestTransactionManager_Commit(t *testing.T) {
	tm, mockPool := newMockTxManager(t)

	mockPool.ExpectBegin()
	mockPool.ExpectExec(updateBalanceQuery).
		WithArgs("70", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(updateBalanceQuery).
		WithArgs("80", int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		accounts := f.NewAccountRepository()
		if _, err := accounts.UpdateBalance(context.Background(), "1", decimal.NewFromInt(70)); err != nil {
			return err
		}
		_, err := accounts.UpdateBalance(context.Background(), "2", decimal.NewFromInt(80))

		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	tm, mockPool := newMockTxManager(t)

	mockPool.ExpectBegin()
	mockPool.ExpectExec(updateBalanceQuery).
		WithArgs("70", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
			if _, err := f.NewAccountRepository().UpdateBalance(context.Background(), "1", decimal.NewFromInt(70)); err != nil {
				return err
			}
			_ = decimal.NewFromInt(30).Div(decimal.Zero)

			return nil
		})
	})
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	tm, mockPool := newMockTxManager(t)
	errAbort := errors.New("abort")

	mockPool.ExpectBegin()
	mockPool.ExpectRollback()

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestAccountMapper_FindByID(t *testing.T) {
	session, mockPool := newMockSession(t)
	repo := NewAccountRepository(session)

	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT id, CAST(balance AS TEXT) AS balance FROM accounts WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(mockPool.NewRows([]string{"id", "balance"}).AddRow(int64(1), "100.00"))

	account, err := repo.FindByID(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.True(t, decimal.NewFromInt(100).Equal(account.Balance))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestAccountMapper_FindByIDForUpdateLocksWithinTransaction(t *testing.T) {
	tm, mockPool := newMockTxManager(t)

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT id, CAST(balance AS TEXT) AS balance FROM accounts WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1)).
		WillReturnRows(mockPool.NewRows([]string{"id", "balance"}).AddRow(int64(1), "100.00"))
	mockPool.ExpectExec(updateBalanceQuery).
		WithArgs("70", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		accounts := f.NewAccountRepository()
		account, err := accounts.FindByIDForUpdate(context.Background(), "1")
		if err != nil {
			return err
		}
		_, err = accounts.UpdateBalance(context.Background(), "1", account.Balance.Sub(decimal.NewFromInt(30)))

		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTransactionManager_BeginFailureIsStorageFailure(t *testing.T) {
	tm, mockPool := newMockTxManager(t)

	mockPool.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, domainerrors.IsStorageFailure(err))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTransactionManager_CommitFailureIsStorageFailure(t *testing.T) {
	tm, mockPool := newMockTxManager(t)

	mockPool.ExpectBegin()
	mockPool.ExpectCommit().WillReturnError(errors.New("could not serialize access"))

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return nil
	})

	require.Error(t, err)
	assert.True(t, domainerrors.IsStorageFailure(err))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTransactionManager_RollbackFailureKeepsCause(t *testing.T) {
	tm, mockPool := newMockTxManager(t)
	errAbort := errors.New("abort")

	mockPool.ExpectBegin()
	mockPool.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return errAbort
	})

	require.ErrorIs(t, err, errAbort)
	assert.True(t, domainerrors.IsStorageFailure(err))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
