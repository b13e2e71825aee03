package impl

import (
	"context"
	"testing"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	mockRepo "polystore/internal/mocks/repository"
	"polystore/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *mockRepo.MockUserRepository
	finder   *mockRepo.MockUserFinder
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	finder := mockRepo.NewMockUserFinder(t)

	service := NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Finder:   finder,
		Logger:   newDiscardLogger(),
	})

	return userServiceFixtures{
		service:  service,
		userRepo: userRepo,
		finder:   finder,
	}
}

func TestUserService_CreateUser_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().
		Add(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = "1"
		}).
		Return(repository.WriteResult{Affected: 1}, nil)

	user, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{Name: "joe", Email: "joe@x.com"})
	require.NoError(t, err)
	assert.Equal(t, &entity.User{ID: "1", Name: "joe", Email: "joe@x.com"}, user)
}

func TestUserService_CreateUser_NoEffect(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().
		Add(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.WriteResult{}, nil)

	user, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{Name: "joe", Email: "joe@x.com"})
	require.ErrorIs(t, err, domainerrors.ErrUserCreationFailed)
	assert.Nil(t, user)
}

func TestUserService_CreateUser_StorageFailurePassesThrough(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	storageErr := domainerrors.NewDatabaseExecuteError(errors.New("duplicate key"), "failed to insert user")

	fx.userRepo.EXPECT().
		Add(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.WriteResult{}, storageErr)

	_, err := fx.service.CreateUser(ctx, &usecase.CreateUserInput{Name: "joe", Email: "joe@x.com"})
	assert.Same(t, storageErr, err)
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().
			Update(ctx, &entity.User{ID: "1", Name: "a2", Email: "b2@x.com"}).
			Return(repository.WriteResult{Affected: 1}, nil)

		user, err := fx.service.UpdateUser(ctx, &usecase.UpdateUserInput{ID: "1", Name: "a2", Email: "b2@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "a2", user.Name)
	})

	t.Run("no such id", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.User")).
			Return(repository.WriteResult{}, nil)

		user, err := fx.service.UpdateUser(ctx, &usecase.UpdateUserInput{ID: "9", Name: "a", Email: "b"})
		require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
		assert.Nil(t, user)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().Delete(ctx, "1").Return(repository.WriteResult{Affected: 1}, nil).Once()
	fx.userRepo.EXPECT().Delete(ctx, "1").Return(repository.WriteResult{}, nil).Once()

	require.NoError(t, fx.service.DeleteUser(ctx, "1"))
	assert.ErrorIs(t, fx.service.DeleteUser(ctx, "1"), domainerrors.ErrUserNotFound)
}

func TestUserService_GetUser_AbsentIsNotAnError(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByID(ctx, "404").Return(nil, nil)

	user, err := fx.service.GetUser(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_ListUsers_EmptyStore(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindAll(ctx).Return(nil, nil)

	users, err := fx.service.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserService_SearchUsers(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()
		anns := []*entity.User{{ID: "1", Name: "ann"}}

		fx.finder.EXPECT().FindByName(ctx, "ann").Return(anns, nil)

		users, err := fx.service.SearchUsers(ctx, &usecase.SearchUsersInput{Name: "ann"})
		require.NoError(t, err)
		assert.Equal(t, anns, users)
	})

	t.Run("by email without match", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.finder.EXPECT().FindByEmail(ctx, "x@x.com").Return(nil, nil)

		users, err := fx.service.SearchUsers(ctx, &usecase.SearchUsersInput{Email: "x@x.com"})
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("no criteria", func(t *testing.T) {
		fx := createTestUserService(t)

		_, err := fx.service.SearchUsers(context.Background(), &usecase.SearchUsersInput{})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("backend without finder", func(t *testing.T) {
		service := NewUserService(UserServiceParams{
			UserRepo: mockRepo.NewMockUserRepository(t),
			Logger:   newDiscardLogger(),
		})

		_, err := service.SearchUsers(context.Background(), &usecase.SearchUsersInput{Name: "ann"})
		assert.ErrorIs(t, err, domainerrors.ErrUnsupportedOperation)
	})
}
