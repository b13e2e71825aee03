package sqltemplate

import (
	"context"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/infra/persistence/ident"

	"github.com/shopspring/decimal"
)

const (
	insertAccountSQL = `INSERT INTO accounts(balance) VALUES (?) RETURNING id`
	selectAccountSQL = `SELECT id, balance FROM accounts WHERE id = ?`
	lockAccountSQL   = selectAccountSQL + ` FOR UPDATE`
	updateBalanceSQL = `UPDATE accounts SET balance = ? WHERE id = ?`
)

type accountRow struct {
	ID      int64           `db:"id"`
	Balance decimal.Decimal `db:"balance"`
}

type accountRepository struct {
	tpl *Template
}

// NewAccountRepository returns an account repository that issues its statements through tpl.
func NewAccountRepository(tpl *Template) repository.AccountRepository {
	return &accountRepository{tpl: tpl}
}

func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) (repository.WriteResult, error) {
	id, err := repo.tpl.Insert(ctx, insertAccountSQL, account.Balance)
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to insert account")
	}
	account.ID = ident.Format(id)

	return repository.WriteResult{Affected: 1}, nil
}

func (repo *accountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return repo.find(ctx, selectAccountSQL, id)
}

// FindByIDForUpdate locks the row on postgres. SQLite has no row locks and allows a single
// writer at a time, so there it is a plain read.
func (repo *accountRepository) FindByIDForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	if repo.tpl.DriverName() == DriverSQLite {
		return repo.find(ctx, selectAccountSQL, id)
	}

	return repo.find(ctx, lockAccountSQL, id)
}

func (repo *accountRepository) find(ctx context.Context, query, id string) (*entity.Account, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return nil, nil
	}

	var row accountRow
	found, err := repo.tpl.QueryOne(ctx, &row, query, key)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}
	if !found {
		return nil, nil
	}

	return &entity.Account{ID: ident.Format(row.ID), Balance: row.Balance}, nil
}

func (repo *accountRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (repository.WriteResult, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return repository.WriteResult{}, nil
	}

	affected, err := repo.tpl.Update(ctx, updateBalanceSQL, balance, key)
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to update account balance")
	}

	return repository.WriteResult{Affected: affected}, nil
}
