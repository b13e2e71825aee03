package sqltemplate

import (
	"context"
	"testing"

	"polystore/internal/domain/entity"
	"polystore/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccounts(t *testing.T, accounts repository.AccountRepository, balances ...int64) []string {
	t.Helper()

	ids := make([]string, 0, len(balances))
	for _, balance := range balances {
		account := &entity.Account{Balance: decimal.NewFromInt(balance)}
		_, err := accounts.Create(context.Background(), account)
		require.NoError(t, err)
		ids = append(ids, account.ID)
	}

	return ids
}

func balanceOf(t *testing.T, accounts repository.AccountRepository, id string) decimal.Decimal {
	t.Helper()

	account, err := accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, account)

	return account.Balance
}

func TestTransactionManager_Commit(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(NewTemplate(db))
	ids := seedAccounts(t, accounts, 100, 50)
	tm := NewTransactionManager(db)

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		txAccounts := f.NewAccountRepository()
		if _, err := txAccounts.UpdateBalance(context.Background(), ids[0], decimal.NewFromInt(70)); err != nil {
			return err
		}
		_, err := txAccounts.UpdateBalance(context.Background(), ids[1], decimal.NewFromInt(80))

		return err
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(70).Equal(balanceOf(t, accounts, ids[0])))
	assert.True(t, decimal.NewFromInt(80).Equal(balanceOf(t, accounts, ids[1])))
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(NewTemplate(db))
	ids := seedAccounts(t, accounts, 100, 50)
	tm := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
			txAccounts := f.NewAccountRepository()
			if _, err := txAccounts.UpdateBalance(context.Background(), ids[0], decimal.NewFromInt(70)); err != nil {
				return err
			}
			_ = decimal.NewFromInt(30).Div(decimal.Zero)
			_, err := txAccounts.UpdateBalance(context.Background(), ids[1], decimal.NewFromInt(80))

			return err
		})
	})

	assert.True(t, decimal.NewFromInt(100).Equal(balanceOf(t, accounts, ids[0])))
	assert.True(t, decimal.NewFromInt(50).Equal(balanceOf(t, accounts, ids[1])))
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(NewTemplate(db))
	tm := NewTransactionManager(db)
	errAbort := errors.New("abort")

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		if _, err := f.NewUserRepository().Add(context.Background(), &entity.User{Name: "a", Email: "b"}); err != nil {
			return err
		}

		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	all, err := users.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
