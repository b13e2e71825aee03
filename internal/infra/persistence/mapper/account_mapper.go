package mapper

import (
	"context"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/infra/persistence/ident"

	"github.com/shopspring/decimal"
)

type accountRecord struct {
	ID      int64  `db:"id"`
	Balance string `db:"balance"`
}

type accountMapper struct {
	session *Session
}

// NewAccountRepository returns an account repository that runs the "account" statements.
func NewAccountRepository(session *Session) repository.AccountRepository {
	return &accountMapper{session: session}
}

func (m *accountMapper) Create(ctx context.Context, account *entity.Account) (repository.WriteResult, error) {
	var id int64
	found, err := m.session.SelectOne(ctx, &id, "account.add", map[string]any{
		"balance": account.Balance.String(),
	})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to insert account")
	}
	if !found {
		return repository.WriteResult{}, nil
	}
	account.ID = ident.Format(id)

	return repository.WriteResult{Affected: 1}, nil
}

func (m *accountMapper) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return m.find(ctx, "account.find", id)
}

func (m *accountMapper) FindByIDForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return m.find(ctx, "account.findForUpdate", id)
}

func (m *accountMapper) find(ctx context.Context, statementID, id string) (*entity.Account, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return nil, nil
	}

	var record accountRecord
	found, err := m.session.SelectOne(ctx, &record, statementID, map[string]any{"id": key})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}
	if !found {
		return nil, nil
	}

	balance, err := decimal.NewFromString(record.Balance)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "stored balance is not a decimal")
	}

	return &entity.Account{ID: ident.Format(record.ID), Balance: balance}, nil
}

func (m *accountMapper) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (repository.WriteResult, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return repository.WriteResult{}, nil
	}

	affected, err := m.session.Exec(ctx, "account.updateBalance", map[string]any{
		"id":      key,
		"balance": balance.String(),
	})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to update account balance")
	}

	return repository.WriteResult{Affected: affected}, nil
}
