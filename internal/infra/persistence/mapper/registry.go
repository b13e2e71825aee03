// Package mapper is the statement-binding realization of the persistence layer. Each
// repository method names a declared statement instead of embedding SQL; the registry
// compiles the statement's named parameters into pgx positional arguments.
package mapper

import (
	"polystore/internal/errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Kind tells how a statement is executed.
type Kind int

const (
	KindSelect Kind = iota
	KindInsert
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Statement is one mapped SQL statement. SQL uses :name placeholders.
type Statement struct {
	ID   string
	Kind Kind
	SQL  string
}

// Namespace groups the statements of one entity; statement IDs are qualified as
// "<namespace>.<id>".
type Namespace struct {
	Name       string
	Statements []Statement
}

// Registry holds compiled-on-demand statements keyed by qualified ID.
type Registry struct {
	statements map[string]Statement
}

// NewRegistry registers every statement of the given namespaces. Duplicate qualified IDs
// are rejected.
func NewRegistry(namespaces ...Namespace) (*Registry, error) {
	r := &Registry{statements: make(map[string]Statement)}
	for _, ns := range namespaces {
		for _, stmt := range ns.Statements {
			id := ns.Name + "." + stmt.ID
			if _, exists := r.statements[id]; exists {
				return nil, errors.Errorf("duplicate mapped statement %q", id)
			}
			stmt.ID = id
			r.statements[id] = stmt
		}
	}

	return r, nil
}

// DefaultRegistry returns the registry of the user and account statements.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(UserNamespace, AccountNamespace)
}

// Lookup returns the statement registered under id.
func (r *Registry) Lookup(id string) (Statement, error) {
	stmt, ok := r.statements[id]
	if !ok {
		return Statement{}, errors.Errorf("unknown mapped statement %q", id)
	}

	return stmt, nil
}

// Compile binds params to the statement and returns pgx-ready SQL with $n placeholders.
func (r *Registry) Compile(id string, params map[string]any) (Statement, string, []any, error) {
	stmt, err := r.Lookup(id)
	if err != nil {
		return Statement{}, "", nil, err
	}

	if params == nil {
		params = map[string]any{}
	}

	query, args, err := sqlx.Named(stmt.SQL, params)
	if err != nil {
		return Statement{}, "", nil, errors.Wrapf(err, "failed to bind statement %q", id)
	}

	query, err = squirrel.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return Statement{}, "", nil, errors.Wrapf(err, "failed to rewrite placeholders of %q", id)
	}

	return stmt, query, args, nil
}
