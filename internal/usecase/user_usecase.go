// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"polystore/internal/domain/entity"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to add a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// UpdateUserInput replaces name and email of the user identified by ID.
type UpdateUserInput struct {
	ID    string
	Name  string
	Email string
}

// SearchUsersInput selects users by exact name or exact email. Name wins when both are set.
type SearchUsersInput struct {
	Name  string
	Email string
}

// UserUsecase translates repository outcomes into caller-visible results.
// A missing user or a write that matched nothing is reported as ErrUserNotFound;
// storage failures are returned unchanged.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
	// GetUser returns (nil, nil) when the user does not exist.
	GetUser(ctx context.Context, id string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	SearchUsers(ctx context.Context, input *SearchUsersInput) ([]*entity.User, error)
}
