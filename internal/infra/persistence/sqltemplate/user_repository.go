package sqltemplate

import (
	"context"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/infra/persistence/ident"
)

const (
	insertUserSQL  = `INSERT INTO users(name, email) VALUES (?, ?) RETURNING id`
	updateUserSQL  = `UPDATE users SET name = ?, email = ? WHERE id = ?`
	deleteUserSQL  = `DELETE FROM users WHERE id = ?`
	selectUserSQL  = `SELECT id, name, email FROM users WHERE id = ?`
	selectUsersSQL = `SELECT id, name, email FROM users ORDER BY id`
	usersByNameSQL = `SELECT id, name, email FROM users WHERE name = ? ORDER BY id`
	userByEmailSQL = `SELECT id, name, email FROM users WHERE email = ? ORDER BY id LIMIT 1`
)

type userRow struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

func (r userRow) toDomain() *entity.User {
	return &entity.User{
		ID:    ident.Format(r.ID),
		Name:  r.Name,
		Email: r.Email,
	}
}

type userRepository struct {
	tpl *Template
}

// NewUserRepository returns a user repository that issues its statements through tpl.
func NewUserRepository(tpl *Template) repository.UserRepository {
	return &userRepository{tpl: tpl}
}

// NewUserFinder exposes the exact-match lookups of the raw SQL backend.
func NewUserFinder(tpl *Template) repository.UserFinder {
	return &userRepository{tpl: tpl}
}

func (repo *userRepository) Add(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	id, err := repo.tpl.Insert(ctx, insertUserSQL, user.Name, user.Email)
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to insert user")
	}
	user.ID = ident.Format(id)

	return repository.WriteResult{Affected: 1}, nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	id, ok := ident.Parse(user.ID)
	if !ok {
		return repository.WriteResult{}, nil
	}

	affected, err := repo.tpl.Update(ctx, updateUserSQL, user.Name, user.Email, id)
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return repository.WriteResult{Affected: affected}, nil
}

func (repo *userRepository) Delete(ctx context.Context, id string) (repository.WriteResult, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return repository.WriteResult{}, nil
	}

	affected, err := repo.tpl.Update(ctx, deleteUserSQL, key)
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}

	return repository.WriteResult{Affected: affected}, nil
}

func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return nil, nil
	}

	var row userRow
	found, err := repo.tpl.QueryOne(ctx, &row, selectUserSQL, key)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}
	if !found {
		return nil, nil
	}

	return row.toDomain(), nil
}

func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	return repo.list(ctx, "failed to list users", selectUsersSQL)
}

func (repo *userRepository) FindByName(ctx context.Context, name string) ([]*entity.User, error) {
	return repo.list(ctx, "failed to find users by name", usersByNameSQL, name)
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var row userRow
	found, err := repo.tpl.QueryOne(ctx, &row, userByEmailSQL, email)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}
	if !found {
		return nil, nil
	}

	return row.toDomain(), nil
}

func (repo *userRepository) list(ctx context.Context, details, query string, args ...any) ([]*entity.User, error) {
	var rows []userRow
	if err := repo.tpl.Query(ctx, &rows, query, args...); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, details)
	}

	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}

	return users, nil
}
