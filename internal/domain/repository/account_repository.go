package repository

import (
	"context"

	"polystore/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// AccountRepository persists accounts moved by transfers.
type AccountRepository interface {
	// Create persists a new account and assigns account.ID.
	Create(ctx context.Context, account *entity.Account) (WriteResult, error)

	// FindByID returns the account, or (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*entity.Account, error)

	// FindByIDForUpdate is FindByID that also locks the row until the surrounding
	// transaction ends, so a read-modify-write of the balance cannot lose a concurrent update.
	// Outside a transaction the lock is released immediately.
	FindByIDForUpdate(ctx context.Context, id string) (*entity.Account, error)

	// UpdateBalance overwrites the balance of the account.
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (WriteResult, error)
}
