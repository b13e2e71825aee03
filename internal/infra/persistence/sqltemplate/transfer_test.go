package sqltemplate

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"polystore/config"
	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/usecase"
	"polystore/internal/usecase/impl"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, DriverPgx), mock
}

func newTransferService(db *sqlx.DB, guard usecase.TransferGuard) usecase.TransferUsecase {
	return impl.NewTransferService(impl.TransferServiceParams{
		TxManager: NewTransactionManager(db),
		Accounts:  NewAccountRepository(NewTemplate(db)),
		Config:    &config.Config{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Guard:     guard,
	})
}

func TestTransferService_CommitsAgainstSQLite(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(NewTemplate(db))
	ids := seedAccounts(t, accounts, 100, 50)

	out, err := newTransferService(db, nil).Transfer(context.Background(), &usecase.TransferInput{
		FromID: ids[0],
		ToID:   ids[1],
		Amount: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Equal(t, repository.TxCommitted, out.State)

	assert.True(t, decimal.NewFromInt(70).Equal(balanceOf(t, accounts, ids[0])))
	assert.True(t, decimal.NewFromInt(80).Equal(balanceOf(t, accounts, ids[1])))
}

func TestTransferService_GuardPanicRollsBackSQLite(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(NewTemplate(db))
	ids := seedAccounts(t, accounts, 100, 50)

	divide := func(_, _ *entity.Account, amount decimal.Decimal) error {
		_ = amount.Div(decimal.Zero)

		return nil
	}

	out, err := newTransferService(db, divide).Transfer(context.Background(), &usecase.TransferInput{
		FromID: ids[0],
		ToID:   ids[1],
		Amount: decimal.NewFromInt(30),
	})
	require.Error(t, err)
	assert.Nil(t, out)

	var fault *domainerrors.TransactionFaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, string(repository.TxRolledBack), fault.State())

	assert.True(t, decimal.NewFromInt(100).Equal(balanceOf(t, accounts, ids[0])))
	assert.True(t, decimal.NewFromInt(50).Equal(balanceOf(t, accounts, ids[1])))
}

func TestAccountRepository_FindByIDForUpdate_SQLite(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(NewTemplate(db))
	ids := seedAccounts(t, accounts, 100)

	account, err := accounts.FindByIDForUpdate(context.Background(), ids[0])
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.True(t, decimal.NewFromInt(100).Equal(account.Balance))

	missing, err := accounts.FindByIDForUpdate(context.Background(), "999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepository_FindByIDForUpdate_LocksOnPostgres(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, balance FROM accounts WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "balance"}).AddRow(int64(7), "100.00"))
	mock.ExpectCommit()

	err := NewTransactionManager(db).Execute(context.Background(), func(f repository.RepositoryFactory) error {
		account, err := f.NewAccountRepository().FindByIDForUpdate(context.Background(), "7")
		if err != nil {
			return err
		}
		assert.Equal(t, "7", account.ID)

		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_BeginFailureIsStorageFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := NewTransactionManager(db).Execute(context.Background(), func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, domainerrors.IsStorageFailure(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitFailureIsStorageFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("could not serialize access"))

	err := NewTransactionManager(db).Execute(context.Background(), func(repository.RepositoryFactory) error {
		return nil
	})

	require.Error(t, err)
	assert.True(t, domainerrors.IsStorageFailure(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackFailureKeepsCause(t *testing.T) {
	db, mock := newMockDB(t)
	errAbort := errors.New("abort")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	err := NewTransactionManager(db).Execute(context.Background(), func(repository.RepositoryFactory) error {
		return errAbort
	})

	require.ErrorIs(t, err, errAbort)
	assert.True(t, domainerrors.IsStorageFailure(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
