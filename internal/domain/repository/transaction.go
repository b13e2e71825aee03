package repository

import "context"

// TxState is the lifecycle of a transaction scope.
type TxState string

const (
	TxPending    TxState = "PENDING"
	TxInProgress TxState = "IN_PROGRESS"
	TxCommitted  TxState = "COMMITTED"
	TxRolledBack TxState = "ROLLED_BACK"
)

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver.
type TransactionManager interface {
	// Execute runs fn within a single database transaction.
	// If fn returns an error or panics, every write issued through the factory is rolled back
	// before the error is returned or the panic continues. Otherwise the transaction commits.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// NewUserRepository returns a UserRepository instance bound to the current transaction.
	NewUserRepository() UserRepository

	// NewAccountRepository returns an AccountRepository instance bound to the current transaction.
	NewAccountRepository() AccountRepository
}
