package mapper

import (
	"context"

	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/errors"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type txManager struct {
	db       TxBeginner
	registry *Registry
}

type repositoryFactory struct {
	session *Session
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.session)
}

func (f *repositoryFactory) NewAccountRepository() repository.AccountRepository {
	return NewAccountRepository(f.session)
}

// NewTransactionManager returns a TransactionManager running sessions on pgx transactions.
func NewTransactionManager(db TxBeginner, registry *Registry) repository.TransactionManager {
	return &txManager{db: db, registry: registry}
}

// Execute runs fn within a single pgx transaction. Begin, commit and rollback failures are
// storage failures; an error from fn is returned unchanged after the rollback.
func (tm *txManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx, err := tm.db.Begin(ctx)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{session: NewSession(tm.registry, tx)}); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return errors.Join(err, domainerrors.NewDatabaseExecuteError(rbErr, "failed to roll back transaction"))
		}

		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to commit transaction")
	}

	return nil
}
