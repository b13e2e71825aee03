package mapper

import (
	"context"
	"log/slog"

	"polystore/config"
	"polystore/internal/domain/lifecycle"
	"polystore/internal/errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewPool builds the pgx pool of the mapper backend. Connections are opened lazily;
// the start hook pings once so a bad DSN fails the boot.
func NewPool(params Params) (*pgxpool.Pool, error) {
	cfg := params.Config.Mapper
	if cfg == nil {
		return nil, errors.New("mapper configuration is required for the mapper backend")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse mapper dsn")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pgx pool")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := pool.Ping(ctx); err != nil {
				return errors.Wrap(err, "failed to ping mapper database")
			}
			params.Logger.Info("mapper backend ready", slog.Int("max_conns", int(poolCfg.MaxConns)))

			return nil
		},
		OnStop: func(_ context.Context) error {
			pool.Close()

			return nil
		},
	})

	return pool, nil
}
