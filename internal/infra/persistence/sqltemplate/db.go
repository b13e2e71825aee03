// Package sqltemplate is the raw SQL realization of the persistence layer: hand-written
// statements executed through a small template over sqlx.
package sqltemplate

import (
	"context"
	"embed"
	"log/slog"
	"sync"

	"polystore/config"
	"polystore/internal/domain/lifecycle"
	"polystore/internal/errors"
	"polystore/internal/infra/persistence/poolstats"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	// Register database/sql drivers.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

var gooseMu sync.Mutex

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the raw SQL backend connection and ties it to the fx lifecycle.
func New(params Params) (*sqlx.DB, error) {
	cfg := params.Config.SQLTemplate
	if cfg == nil {
		return nil, errors.New("sqlTemplate configuration is required for the sqltemplate backend")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				return errors.Wrapf(err, "failed to ping %s", cfg.Driver)
			}
			params.Logger.Info("sqltemplate backend ready", slog.String("driver", cfg.Driver))

			go poolstats.Monitor(monitorCtx, params.Logger, "sqltemplate", db.DB, poolstats.DefaultInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return db.Close()
		},
	})

	return db, nil
}

// Open connects with the configured driver and, when InitSchema is set, applies the
// embedded migrations for that driver.
func Open(ctx context.Context, cfg *config.SQLTemplateConfig) (*sqlx.DB, error) {
	dialect, dir, err := migrationTarget(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", cfg.Driver)
	}
	if cfg.InitSchema {
		if err := migrate(ctx, db, dialect, dir); err != nil {
			_ = db.Close()

			return nil, err
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	return db, nil
}

func migrationTarget(driver string) (dialect, dir string, err error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	case DriverPgx:
		return "postgres", "migrations/postgres", nil
	default:
		return "", "", errors.Errorf("unsupported sqlTemplate driver %q", driver)
	}
}

func migrate(ctx context.Context, db *sqlx.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer func() {
		goose.SetBaseFS(nil)
		gooseMu.Unlock()
	}()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}
	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}
