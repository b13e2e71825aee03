package sqltemplate

import (
	"context"
	"database/sql"

	"polystore/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Template executes positional-parameter statements against a connection or a transaction.
// Statements are written with '?' and rebound for the driver before execution.
type Template struct {
	ext sqlx.ExtContext
}

// NewTemplate binds a template to db, which may be a *sqlx.DB or a *sqlx.Tx.
func NewTemplate(ext sqlx.ExtContext) *Template {
	return &Template{ext: ext}
}

// DriverName reports the database/sql driver behind the template.
func (t *Template) DriverName() string {
	return t.ext.DriverName()
}

// Update runs a write statement and returns the number of affected rows.
func (t *Template) Update(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.ext.ExecContext(ctx, t.ext.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// Insert runs an INSERT ... RETURNING id statement and returns the generated key.
func (t *Template) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := t.ext.QueryRowxContext(ctx, t.ext.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// Query scans every row into dest, which must be a pointer to a slice.
func (t *Template) Query(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, t.ext, dest, t.ext.Rebind(query), args...)
}

// QueryOne scans a single row into dest. found is false when no row matched.
func (t *Template) QueryOne(ctx context.Context, dest any, query string, args ...any) (found bool, err error) {
	err = sqlx.GetContext(ctx, t.ext, dest, t.ext.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
