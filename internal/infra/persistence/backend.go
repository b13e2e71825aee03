// Package persistence assembles the storage backend chosen by configuration.
package persistence

import (
	"log/slog"

	"polystore/config"
	"polystore/internal/domain/repository"
	"polystore/internal/errors"
	"polystore/internal/infra/persistence/document"
	"polystore/internal/infra/persistence/mapper"
	"polystore/internal/infra/persistence/postgres"
	"polystore/internal/infra/persistence/sqltemplate"

	"go.uber.org/fx"
)

// Backend is the set of repositories one storage technology provides. Finder, Accounts
// and TxManager are nil when the backend cannot offer them.
type Backend struct {
	Kind      config.BackendKind
	Users     repository.UserRepository
	Finder    repository.UserFinder
	Accounts  repository.AccountRepository
	TxManager repository.TransactionManager
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens only the configured backend.
func New(params Params) (*Backend, error) {
	kind := params.Config.Backend.Kind

	var (
		backend *Backend
		err     error
	)
	switch kind {
	case config.BackendSQLTemplate:
		backend, err = newSQLTemplate(params)
	case config.BackendORM:
		backend, err = newORM(params)
	case config.BackendMapper:
		backend, err = newMapper(params)
	case config.BackendDocument:
		backend, err = newDocument(params)
	default:
		return nil, errors.Errorf("unknown backend kind %q", kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s backend", kind)
	}

	backend.Kind = kind
	params.Logger.Info("storage backend selected",
		slog.String("kind", string(kind)),
		slog.Bool("transactions", backend.TxManager != nil),
	)

	return backend, nil
}

func newSQLTemplate(params Params) (*Backend, error) {
	db, err := sqltemplate.New(sqltemplate.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, err
	}

	tpl := sqltemplate.NewTemplate(db)

	return &Backend{
		Users:     sqltemplate.NewUserRepository(tpl),
		Finder:    sqltemplate.NewUserFinder(tpl),
		Accounts:  sqltemplate.NewAccountRepository(tpl),
		TxManager: sqltemplate.NewTransactionManager(db),
	}, nil
}

func newORM(params Params) (*Backend, error) {
	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Backend{
		Users:     postgres.NewUserRepository(db),
		Finder:    postgres.NewUserFinder(db),
		Accounts:  postgres.NewAccountRepository(db),
		TxManager: postgres.NewTransactionManager(db),
	}, nil
}

func newMapper(params Params) (*Backend, error) {
	registry, err := mapper.DefaultRegistry()
	if err != nil {
		return nil, err
	}

	pool, err := mapper.NewPool(mapper.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, err
	}

	session := mapper.NewSession(registry, pool)

	return &Backend{
		Users:     mapper.NewUserRepository(session),
		Finder:    mapper.NewUserFinder(session),
		Accounts:  mapper.NewAccountRepository(session),
		TxManager: mapper.NewTransactionManager(pool, registry),
	}, nil
}

// newDocument has no accounts and no transactions; transfers are refused upstream.
func newDocument(params Params) (*Backend, error) {
	client, err := document.NewClient(document.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, err
	}

	store := document.NewUserStore(client, params.Config.Document.KeyPrefix)

	return &Backend{
		Users:  store,
		Finder: store,
	}, nil
}

// Module provides the selected backend and its repositories to the fx graph.
var Module = fx.Options(
	fx.Provide(
		New,
		func(b *Backend) repository.UserRepository { return b.Users },
		func(b *Backend) repository.UserFinder { return b.Finder },
		func(b *Backend) repository.AccountRepository { return b.Accounts },
		func(b *Backend) repository.TransactionManager { return b.TxManager },
	),
)
