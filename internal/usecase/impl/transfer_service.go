package impl

import (
	"context"
	"log/slog"

	"polystore/config"
	deliverycontext "polystore/internal/delivery/context"
	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type transferService struct {
	txManager repository.TransactionManager
	accounts  repository.AccountRepository
	guard     usecase.TransferGuard
	logger    *slog.Logger
}

// TransferServiceParams holds dependencies for TransferService, injected by Fx.
// TxManager and Accounts are nil on backends without transactions.
type TransferServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Accounts  repository.AccountRepository
	Config    *config.Config
	Logger    *slog.Logger
	Guard     usecase.TransferGuard `optional:"true"`
}

// NewTransferService is the constructor for transferService.
func NewTransferService(params TransferServiceParams) usecase.TransferUsecase {
	guard := params.Guard
	if guard == nil {
		guard = DefaultTransferGuard(params.Config)
	}

	return &transferService{
		txManager: params.TxManager,
		accounts:  params.Accounts,
		guard:     guard,
		logger:    params.Logger,
	}
}

// DefaultTransferGuard rejects transfers that would overdraw the source account when
// transfer.requirePositiveBalance is set.
func DefaultTransferGuard(cfg *config.Config) usecase.TransferGuard {
	requirePositive := cfg != nil && cfg.Transfer.RequirePositiveBalance

	return func(from, _ *entity.Account, amount decimal.Decimal) error {
		if requirePositive && from.Balance.Sub(amount).IsNegative() {
			return domainerrors.ErrInsufficientBalance.WithDetails("account " + from.ID)
		}

		return nil
	}
}

func (srv *transferService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Transfer debits the source, runs the guard, then credits the target inside one
// transaction. A panic anywhere in that scope is returned as a TransactionFaultError
// after the transaction manager has rolled back.
func (srv *transferService) Transfer(ctx context.Context, input *usecase.TransferInput) (output *usecase.TransferOutput, err error) {
	if srv.txManager == nil {
		return nil, domainerrors.ErrUnsupportedOperation.WithDetails("transfer needs a transactional backend")
	}
	if err := validateTransfer(input); err != nil {
		return nil, err
	}

	logger := srv.log(ctx).With(
		slog.String("from", input.FromID),
		slog.String("to", input.ToID),
		slog.String("amount", input.Amount.String()),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Transfer aborted by fault", slog.Any("fault", r), slog.String("state", string(repository.TxRolledBack)))
			output = nil
			err = domainerrors.NewTransactionFaultError(r, string(repository.TxRolledBack))
		}
	}()

	var result *usecase.TransferOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accounts := repoFactory.NewAccountRepository()

		from, to, err := srv.lockAccounts(ctx, accounts, input.FromID, input.ToID)
		if err != nil {
			return err
		}

		debited := from.Balance.Sub(input.Amount)
		if err := srv.writeBalance(ctx, accounts, from.ID, debited); err != nil {
			return err
		}

		if err := srv.guard(from, to, input.Amount); err != nil {
			return err
		}

		credited := to.Balance.Add(input.Amount)
		if err := srv.writeBalance(ctx, accounts, to.ID, credited); err != nil {
			return err
		}

		result = &usecase.TransferOutput{
			FromID:      from.ID,
			ToID:        to.ID,
			Amount:      input.Amount,
			FromBalance: debited,
			ToBalance:   credited,
		}

		return nil
	})
	if err != nil {
		logger.Warn("Transfer rolled back", slog.Any("error", err))

		return nil, err
	}

	result.State = repository.TxCommitted
	logger.Info("Transfer committed")

	return result, nil
}

func (srv *transferService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	if srv.accounts == nil {
		return nil, domainerrors.ErrUnsupportedOperation.WithDetails("accounts need a relational backend")
	}
	if input.Balance.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("balance must not be negative")
	}

	account := &entity.Account{Balance: input.Balance}
	result, err := srv.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	if result.NoEffect() {
		return nil, domainerrors.ErrInternalError.WithDetails("account was not created")
	}

	return account, nil
}

func (srv *transferService) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	if srv.accounts == nil {
		return nil, domainerrors.ErrUnsupportedOperation.WithDetails("accounts need a relational backend")
	}

	return srv.accounts.FindByID(ctx, id)
}

// lockAccounts reads both accounts with row locks held to the end of the transaction.
// Rows are always locked in ascending ID order so opposing transfers cannot deadlock.
func (srv *transferService) lockAccounts(ctx context.Context, accounts repository.AccountRepository, fromID, toID string) (*entity.Account, *entity.Account, error) {
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	firstAccount, err := srv.lockAccount(ctx, accounts, first)
	if err != nil {
		return nil, nil, err
	}
	secondAccount, err := srv.lockAccount(ctx, accounts, second)
	if err != nil {
		return nil, nil, err
	}

	if first == fromID {
		return firstAccount, secondAccount, nil
	}

	return secondAccount, firstAccount, nil
}

func (srv *transferService) lockAccount(ctx context.Context, accounts repository.AccountRepository, id string) (*entity.Account, error) {
	account, err := accounts.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domainerrors.ErrAccountNotFound.WithDetails("account " + id)
	}

	return account, nil
}

func (srv *transferService) writeBalance(ctx context.Context, accounts repository.AccountRepository, id string, balance decimal.Decimal) error {
	result, err := accounts.UpdateBalance(ctx, id, balance)
	if err != nil {
		return err
	}
	if result.NoEffect() {
		return domainerrors.ErrAccountNotFound.WithDetails("account " + id)
	}

	return nil
}

func validateTransfer(input *usecase.TransferInput) error {
	switch {
	case input.FromID == "" || input.ToID == "":
		return domainerrors.ErrValidationFailed.WithDetails("from and to are required")
	case input.FromID == input.ToID:
		return domainerrors.ErrValidationFailed.WithDetails("from and to must differ")
	case !input.Amount.IsPositive():
		return domainerrors.ErrValidationFailed.WithDetails("amount must be positive")
	default:
		return nil
	}
}
