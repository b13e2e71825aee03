package persistence

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"polystore/config"
	"polystore/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, cfg *config.Config) (Params, *fxtest.Lifecycle) {
	t.Helper()

	lc := fxtest.NewLifecycle(t)

	return Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, lc
}

func TestNew_SQLTemplate(t *testing.T) {
	cfg := &config.Config{
		Backend: config.BackendConfig{Kind: config.BackendSQLTemplate},
		SQLTemplate: &config.SQLTemplateConfig{
			Driver:       "sqlite",
			DSN:          filepath.Join(t.TempDir(), "backend.db"),
			MaxOpenConns: 1,
			InitSchema:   true,
		},
	}
	params, lc := newParams(t, cfg)

	backend, err := New(params)
	require.NoError(t, err)
	lc.RequireStart()
	defer lc.RequireStop()

	assert.Equal(t, config.BackendSQLTemplate, backend.Kind)
	assert.NotNil(t, backend.Finder)
	assert.NotNil(t, backend.Accounts)
	assert.NotNil(t, backend.TxManager)

	user := &entity.User{Name: "a", Email: "b"}
	_, err = backend.Users.Add(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
}

func TestNew_Document(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Backend:  config.BackendConfig{Kind: config.BackendDocument},
		Document: &config.DocumentConfig{Addr: mr.Addr(), KeyPrefix: "t"},
	}
	params, lc := newParams(t, cfg)

	backend, err := New(params)
	require.NoError(t, err)
	lc.RequireStart()
	defer lc.RequireStop()

	assert.NotNil(t, backend.Users)
	assert.NotNil(t, backend.Finder)
	assert.Nil(t, backend.Accounts)
	assert.Nil(t, backend.TxManager)
}

func TestNew_Mapper(t *testing.T) {
	cfg := &config.Config{
		Backend: config.BackendConfig{Kind: config.BackendMapper},
		Mapper:  &config.MapperConfig{DSN: "postgres://u:p@127.0.0.1:1/db", MaxConns: 2},
	}
	params, _ := newParams(t, cfg)

	backend, err := New(params)
	require.NoError(t, err)
	assert.NotNil(t, backend.TxManager)
}

func TestNew_MissingConfiguration(t *testing.T) {
	for _, kind := range []config.BackendKind{
		config.BackendSQLTemplate,
		config.BackendORM,
		config.BackendMapper,
		config.BackendDocument,
	} {
		params, _ := newParams(t, &config.Config{Backend: config.BackendConfig{Kind: kind}})

		_, err := New(params)
		assert.Error(t, err, kind)
	}
}

func TestNew_UnknownKind(t *testing.T) {
	params, _ := newParams(t, &config.Config{Backend: config.BackendConfig{Kind: "tape"}})

	_, err := New(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend kind")
}
