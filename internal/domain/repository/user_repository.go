// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"polystore/internal/domain/entity"
)

// WriteResult is the outcome of a write. Affected == 0 means the write matched no record,
// which is an ordinary result and not an error.
type WriteResult struct {
	Affected int64
}

// NoEffect reports whether the write matched no record.
func (r WriteResult) NoEffect() bool {
	return r.Affected == 0
}

// UserRepository defines the CRUD contract every storage backend implements.
// Callers cannot tell the backends apart by behavior; only configuration chooses one.
//
// Absent records and zero-row writes are values. Only storage failures are returned as errors.
type UserRepository interface {
	// Add persists a user whose ID is unset and assigns the store-generated ID to user.ID.
	Add(ctx context.Context, user *entity.User) (WriteResult, error)

	// Update replaces name and email of the record identified by user.ID.
	Update(ctx context.Context, user *entity.User) (WriteResult, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) (WriteResult, error)

	// FindByID returns the user, or (nil, nil) when no record has that ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindAll returns every user; an empty store yields an empty, non-nil slice.
	FindAll(ctx context.Context) ([]*entity.User, error)
}

// UserFinder is implemented by backends that support exact-match lookups on non-id fields.
type UserFinder interface {
	// FindByName returns every user whose name equals name.
	FindByName(ctx context.Context, name string) ([]*entity.User, error)

	// FindByEmail returns the first user whose email equals email, or (nil, nil).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
