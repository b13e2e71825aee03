package mapper

import (
	"context"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/infra/persistence/ident"
)

type userRecord struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

func (r *userRecord) toDomain() *entity.User {
	return &entity.User{ID: ident.Format(r.ID), Name: r.Name, Email: r.Email}
}

type userMapper struct {
	session *Session
}

// NewUserRepository returns a user repository that runs the "user" statements.
func NewUserRepository(session *Session) repository.UserRepository {
	return &userMapper{session: session}
}

// NewUserFinder returns the exact-match lookups backed by the "user" statements.
func NewUserFinder(session *Session) repository.UserFinder {
	return &userMapper{session: session}
}

func (m *userMapper) Add(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	var id int64
	found, err := m.session.SelectOne(ctx, &id, "user.add", map[string]any{
		"name":  user.Name,
		"email": user.Email,
	})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to insert user")
	}
	if !found {
		return repository.WriteResult{}, nil
	}
	user.ID = ident.Format(id)

	return repository.WriteResult{Affected: 1}, nil
}

func (m *userMapper) Update(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	id, ok := ident.Parse(user.ID)
	if !ok {
		return repository.WriteResult{}, nil
	}

	affected, err := m.session.Exec(ctx, "user.update", map[string]any{
		"id":    id,
		"name":  user.Name,
		"email": user.Email,
	})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	return repository.WriteResult{Affected: affected}, nil
}

func (m *userMapper) Delete(ctx context.Context, id string) (repository.WriteResult, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return repository.WriteResult{}, nil
	}

	affected, err := m.session.Exec(ctx, "user.delete", map[string]any{"id": key})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}

	return repository.WriteResult{Affected: affected}, nil
}

func (m *userMapper) FindByID(ctx context.Context, id string) (*entity.User, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return nil, nil
	}

	return m.findOne(ctx, "user.findUser", map[string]any{"id": key})
}

func (m *userMapper) FindAll(ctx context.Context) ([]*entity.User, error) {
	return m.findList(ctx, "user.findUserList", nil)
}

func (m *userMapper) FindByName(ctx context.Context, name string) ([]*entity.User, error) {
	return m.findList(ctx, "user.findByName", map[string]any{"name": name})
}

func (m *userMapper) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.findOne(ctx, "user.findByEmail", map[string]any{"email": email})
}

func (m *userMapper) findOne(ctx context.Context, id string, params map[string]any) (*entity.User, error) {
	var record userRecord
	found, err := m.session.SelectOne(ctx, &record, id, params)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to run "+id)
	}
	if !found {
		return nil, nil
	}

	return record.toDomain(), nil
}

func (m *userMapper) findList(ctx context.Context, id string, params map[string]any) ([]*entity.User, error) {
	var records []*userRecord
	if err := m.session.SelectList(ctx, &records, id, params); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to run "+id)
	}

	users := make([]*entity.User, 0, len(records))
	for _, record := range records {
		users = append(users, record.toDomain())
	}

	return users, nil
}
