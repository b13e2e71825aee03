package mapper

import (
	"context"

	"polystore/internal/errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor is the part of pgxpool.Pool and pgx.Tx a session needs.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Session executes registry statements against one executor.
type Session struct {
	registry *Registry
	exec     Executor
}

// NewSession binds registry to exec, which may be the pool or a transaction.
func NewSession(registry *Registry, exec Executor) *Session {
	return &Session{registry: registry, exec: exec}
}

// Exec runs an update or delete statement and returns the affected row count.
func (s *Session) Exec(ctx context.Context, id string, params map[string]any) (int64, error) {
	stmt, query, args, err := s.registry.Compile(id, params)
	if err != nil {
		return 0, err
	}
	if stmt.Kind == KindSelect {
		return 0, errors.Errorf("mapped statement %q is a %s", id, stmt.Kind)
	}

	tag, err := s.exec.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// SelectOne scans the first row of a statement into dest. Inserts with RETURNING are
// read through SelectOne as well. found is false when no row came back.
func (s *Session) SelectOne(ctx context.Context, dest any, id string, params map[string]any) (found bool, err error) {
	stmt, query, args, err := s.registry.Compile(id, params)
	if err != nil {
		return false, err
	}
	if stmt.Kind != KindSelect && stmt.Kind != KindInsert {
		return false, errors.Errorf("mapped statement %q is a %s", id, stmt.Kind)
	}

	if err := pgxscan.Get(ctx, s.exec, dest, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// SelectList scans every row of a select statement into dest, a pointer to a slice.
func (s *Session) SelectList(ctx context.Context, dest any, id string, params map[string]any) error {
	stmt, query, args, err := s.registry.Compile(id, params)
	if err != nil {
		return err
	}
	if stmt.Kind != KindSelect {
		return errors.Errorf("mapped statement %q is a %s", id, stmt.Kind)
	}

	return pgxscan.Select(ctx, s.exec, dest, query, args...)
}
