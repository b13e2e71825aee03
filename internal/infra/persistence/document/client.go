// Package document is the document-store realization of the persistence layer. Users are
// JSON documents in Redis with set-based secondary indexes on name and email.
package document

import (
	"context"
	"log/slog"

	"polystore/config"
	"polystore/internal/domain/lifecycle"
	"polystore/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewClient builds the Redis client of the document backend and ties it to the fx lifecycle.
func NewClient(params Params) (*redis.Client, error) {
	cfg := params.Config.Document
	if cfg == nil {
		return nil, errors.New("document configuration is required for the document backend")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}
			params.Logger.Info("document backend ready", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
