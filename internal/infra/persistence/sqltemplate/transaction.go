package sqltemplate

import (
	"context"

	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/errors"

	"github.com/jmoiron/sqlx"
)

type txManager struct {
	db *sqlx.DB
}

// repositoryFactory hands out repositories whose template is bound to one *sqlx.Tx.
type repositoryFactory struct {
	tpl *Template
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tpl)
}

func (f *repositoryFactory) NewAccountRepository() repository.AccountRepository {
	return NewAccountRepository(f.tpl)
}

// NewTransactionManager returns a TransactionManager backed by database/sql transactions.
func NewTransactionManager(db *sqlx.DB) repository.TransactionManager {
	return &txManager{db: db}
}

// Execute runs fn within a single transaction. Begin, commit and rollback failures are
// storage failures; an error from fn is returned unchanged after the rollback.
func (tm *txManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{tpl: NewTemplate(tx)}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, domainerrors.NewDatabaseExecuteError(rbErr, "failed to roll back transaction"))
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to commit transaction")
	}

	return nil
}
