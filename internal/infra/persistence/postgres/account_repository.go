package postgres

import (
	"context"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/infra/persistence/ident"
	"polystore/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts the account and assigns the generated ID.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) (repository.WriteResult, error) {
	accountM := &model.AccountModel{Balance: account.Balance}

	result := repo.db.WithContext(ctx).Create(accountM)
	if result.Error != nil {
		return repository.WriteResult{}, translateError(result.Error, "failed to create account")
	}

	account.ID = ident.Format(accountM.ID)

	return repository.WriteResult{Affected: result.RowsAffected}, nil
}

// FindByID retrieves a single account by ID.
func (repo *accountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return repo.find(repo.db.WithContext(ctx), id)
}

// FindByIDForUpdate retrieves the account with SELECT ... FOR UPDATE.
func (repo *accountRepository) FindByIDForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	return repo.find(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (repo *accountRepository) find(query *gorm.DB, id string) (*entity.Account, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return nil, nil
	}

	var accountM model.AccountModel
	if err := query.Where("id = ?", key).Take(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}

	return &entity.Account{
		ID:      ident.Format(accountM.ID),
		Balance: accountM.Balance,
	}, nil
}

// UpdateBalance overwrites the balance column.
func (repo *accountRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (repository.WriteResult, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return repository.WriteResult{}, nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", key).
		Update("balance", balance)
	if result.Error != nil {
		return repository.WriteResult{}, translateError(result.Error, "failed to update account balance")
	}

	return repository.WriteResult{Affected: result.RowsAffected}, nil
}
