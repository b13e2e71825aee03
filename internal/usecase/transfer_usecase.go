package usecase

import (
	"context"

	"polystore/internal/domain/entity"
	"polystore/internal/domain/repository"

	"github.com/shopspring/decimal"
)

// TransferInput moves Amount from FromID to ToID.
type TransferInput struct {
	FromID string
	ToID   string
	Amount decimal.Decimal
}

// TransferOutput reports the committed balances of both accounts.
type TransferOutput struct {
	FromID      string
	ToID        string
	Amount      decimal.Decimal
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
	State       repository.TxState
}

// CreateAccountInput seeds an account with an opening balance.
type CreateAccountInput struct {
	Balance decimal.Decimal
}

// TransferGuard runs between the debit and the credit of a transfer, with the balances
// read before the debit. An error or a panic aborts the transfer and rolls back the debit.
type TransferGuard func(from, to *entity.Account, amount decimal.Decimal) error

// TransferUsecase moves money between accounts atomically.
type TransferUsecase interface {
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error)
	// GetAccount returns (nil, nil) when the account does not exist.
	GetAccount(ctx context.Context, id string) (*entity.Account, error)
}
