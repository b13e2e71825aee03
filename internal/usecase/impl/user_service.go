// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "polystore/internal/delivery/context"
	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface. It adds no rules of its own;
// every method maps one repository outcome to a result.
type userService struct {
	userRepo repository.UserRepository
	finder   repository.UserFinder
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Finder   repository.UserFinder
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		finder:   params.Finder,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	user := &entity.User{Name: input.Name, Email: input.Email}

	result, err := srv.userRepo.Add(ctx, user)
	if err != nil {
		return nil, err
	}
	if result.NoEffect() {
		return nil, domainerrors.ErrUserCreationFailed
	}

	srv.log(ctx).Info("User created", slog.String("user_id", user.ID))

	return user, nil
}

func (srv *userService) UpdateUser(ctx context.Context, input *usecase.UpdateUserInput) (*entity.User, error) {
	user := &entity.User{ID: input.ID, Name: input.Name, Email: input.Email}

	result, err := srv.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if result.NoEffect() {
		return nil, domainerrors.ErrUserNotFound.WithDetails("no user with id " + input.ID)
	}

	return user, nil
}

func (srv *userService) DeleteUser(ctx context.Context, id string) error {
	result, err := srv.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if result.NoEffect() {
		return domainerrors.ErrUserNotFound.WithDetails("no user with id " + id)
	}

	srv.log(ctx).Info("User deleted", slog.String("user_id", id))

	return nil
}

func (srv *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return srv.userRepo.FindByID(ctx, id)
}

func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*entity.User{}
	}

	return users, nil
}

// SearchUsers requires a backend that implements repository.UserFinder.
func (srv *userService) SearchUsers(ctx context.Context, input *usecase.SearchUsersInput) ([]*entity.User, error) {
	if srv.finder == nil {
		return nil, domainerrors.ErrUnsupportedOperation.WithDetails("user search")
	}

	switch {
	case input.Name != "":
		return srv.finder.FindByName(ctx, input.Name)
	case input.Email != "":
		user, err := srv.finder.FindByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return []*entity.User{}, nil
		}

		return []*entity.User{user}, nil
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("name or email is required")
	}
}
