package postgres

import (
	"context"
	"testing"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email"}

func TestUserRepository_Add(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs("joe", "joe@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "joe", "joe@x.com"))

	user := &entity.User{Name: "joe", Email: "joe@x.com"}
	result, err := repo.Add(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Affected)
	assert.Equal(t, &entity.User{ID: "1", Name: "joe", Email: "joe@x.com"}, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Add_StorageFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New("connection refused"))

	user := &entity.User{Name: "joe", Email: "joe@x.com"}
	_, err := repo.Add(context.Background(), user)
	require.Error(t, err)
	assert.True(t, domainerrors.IsStorageFailure(err))
	assert.Empty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	t.Run("existing row is replaced and re-read", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "a2", "b2@x.com"))

		user := &entity.User{ID: "1", Name: "a2", Email: "b2@x.com"}
		result, err := repo.Update(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Affected)
		assert.Equal(t, "a2", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row affects nothing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		result, err := repo.Update(context.Background(), &entity.User{ID: "99", Name: "x", Email: "x@x.com"})
		require.NoError(t, err)
		assert.True(t, result.NoEffect())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non numeric id never reaches the store", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		result, err := repo.Update(context.Background(), &entity.User{ID: "abc", Name: "x", Email: "x@x.com"})
		require.NoError(t, err)
		assert.True(t, result.NoEffect())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	first, err := repo.Delete(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Affected)

	second, err := repo.Delete(ctx, "3")
	require.NoError(t, err)
	assert.True(t, second.NoEffect())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(5, "joe", "joe@x.com"))

		user, err := repo.FindByID(context.Background(), "5")
		require.NoError(t, err)
		assert.Equal(t, &entity.User{ID: "5", Name: "joe", Email: "joe@x.com"}, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent is not an error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := repo.FindByID(context.Background(), "5")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
			WillReturnError(errors.New("bad connection"))

		user, err := repo.FindByID(context.Background(), "5")
		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, domainerrors.IsStorageFailure(err))
	})
}

func TestUserRepository_FindAll(t *testing.T) {
	t.Run("empty store yields empty slice", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows(userColumns))

		users, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("rows are mapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(1, "a", "a@x.com").
				AddRow(2, "b", "b@x.com"))

		users, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "2", users[1].ID)
		assert.Equal(t, "b@x.com", users[1].Email)
	})
}

func TestUserFinder(t *testing.T) {
	db, mock := newMockDB(t)
	finder := NewUserFinder(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE name = \$1 ORDER BY id`).
		WithArgs("ann").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "ann", "ann@x.com").AddRow(3, "ann", "ann2@x.com"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	anns, err := finder.FindByName(ctx, "ann")
	require.NoError(t, err)
	assert.Len(t, anns, 2)

	nobody, err := finder.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, nobody)
	assert.NoError(t, mock.ExpectationsWereMet())
}
