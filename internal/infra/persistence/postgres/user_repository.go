// Package postgres contains the ORM realization of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/infra/persistence/ident"
	"polystore/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// NewUserFinder exposes exact-match lookups on name and email.
func NewUserFinder(db *gorm.DB) repository.UserFinder {
	return &userRepository{db: db}
}

// Add inserts the user and then re-reads the managed row, so the caller sees every
// column the database assigned, not just the generated key.
func (repo *userRepository) Add(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	userM := fromUserDomain(user)
	userM.ID = 0

	result := repo.db.WithContext(ctx).Create(userM)
	if result.Error != nil {
		return repository.WriteResult{}, translateError(result.Error, "failed to create user")
	}

	managed, err := repo.take(ctx, userM.ID)
	if err != nil {
		return repository.WriteResult{}, err
	}
	if managed == nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(
			errors.Errorf("user %d vanished after insert", userM.ID), "failed to re-read created user")
	}

	*user = *toUserDomain(managed)

	return repository.WriteResult{Affected: result.RowsAffected}, nil
}

// Update replaces name and email; when a row matched, the managed copy is re-read into user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	id, ok := ident.Parse(user.ID)
	if !ok {
		return repository.WriteResult{}, nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": user.Name, "email": user.Email})
	if result.Error != nil {
		return repository.WriteResult{}, translateError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.WriteResult{}, nil
	}

	managed, err := repo.take(ctx, id)
	if err != nil {
		return repository.WriteResult{}, err
	}
	if managed != nil {
		*user = *toUserDomain(managed)
	}

	return repository.WriteResult{Affected: result.RowsAffected}, nil
}

// Delete removes the user row.
func (repo *userRepository) Delete(ctx context.Context, id string) (repository.WriteResult, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return repository.WriteResult{}, nil
	}

	result := repo.db.WithContext(ctx).Where("id = ?", key).Delete(&model.UserModel{})
	if result.Error != nil {
		return repository.WriteResult{}, translateError(result.Error, "failed to delete user")
	}

	return repository.WriteResult{Affected: result.RowsAffected}, nil
}

// FindByID retrieves a single user by ID.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	key, ok := ident.Parse(id)
	if !ok {
		return nil, nil
	}

	userM, err := repo.take(ctx, key)
	if err != nil || userM == nil {
		return nil, err
	}

	return toUserDomain(userM), nil
}

// FindAll retrieves every user.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var models []*model.UserModel
	if err := repo.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for _, userM := range models {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// FindByName retrieves every user with the given name.
func (repo *userRepository) FindByName(ctx context.Context, name string) ([]*entity.User, error) {
	var models []*model.UserModel
	if err := repo.db.WithContext(ctx).Where("name = ?", name).Order("id").Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by name")
	}

	users := make([]*entity.User, 0, len(models))
	for _, userM := range models {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// FindByEmail retrieves the first user with the given email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("email = ?", email).Order("id").Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// take loads one row by key; a missing row is (nil, nil).
func (repo *userRepository) take(ctx context.Context, key int64) (*model.UserModel, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("id = ?", key).Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}

	return &userM, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:    ident.Format(data.ID),
		Name:  data.Name,
		Email: data.Email,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		Name:  data.Name,
		Email: data.Email,
	}
	if id, ok := ident.Parse(data.ID); ok {
		userM.ID = id
	}

	return userM
}
