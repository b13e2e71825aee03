package document

import (
	"context"
	"testing"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*UserStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewUserStore(client, "test"), mr
}

func TestUserStore_Lifecycle(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	user := &entity.User{Name: "a", Email: "b@x.com"}
	result, err := store.Add(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Affected)
	require.NotEmpty(t, user.ID)
	assert.True(t, mr.Exists("test:user:"+user.ID))

	found, err := store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, found)

	user.Name = "a2"
	user.Email = "b2@x.com"
	result, err = store.Update(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Affected)

	found, err = store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a2", found.Name)
	assert.Equal(t, "b2@x.com", found.Email)

	result, err = store.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Affected)
	assert.False(t, mr.Exists("test:user:"+user.ID))

	result, err = store.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, result.NoEffect())

	found, err = store.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserStore_AbsentRecords(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "missing"} {
		found, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, found)

		result, err := store.Update(ctx, &entity.User{ID: id, Name: "n", Email: "e"})
		require.NoError(t, err)
		assert.True(t, result.NoEffect())

		result, err = store.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, result.NoEffect())
	}

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestUserStore_FindAll(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	ids := map[string]bool{}
	for _, name := range []string{"x", "y", "z"} {
		user := &entity.User{Name: name, Email: name + "@x.com"}
		_, err := store.Add(ctx, user)
		require.NoError(t, err)
		ids[user.ID] = true
	}

	users, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.True(t, ids[u.ID])
	}
}

func TestUserStore_IndexesFollowUpdates(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	ann := &entity.User{Name: "ann", Email: "ann@x.com"}
	_, err := store.Add(ctx, ann)
	require.NoError(t, err)
	_, err = store.Add(ctx, &entity.User{Name: "ann", Email: "ann2@x.com"})
	require.NoError(t, err)

	anns, err := store.FindByName(ctx, "ann")
	require.NoError(t, err)
	assert.Len(t, anns, 2)

	ann.Name = "anna"
	ann.Email = "anna@x.com"
	_, err = store.Update(ctx, ann)
	require.NoError(t, err)

	anns, err = store.FindByName(ctx, "ann")
	require.NoError(t, err)
	assert.Len(t, anns, 1)

	byEmail, err := store.FindByEmail(ctx, "anna@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, ann.ID, byEmail.ID)

	stale, err := store.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Nil(t, stale)
}

func TestUserStore_StorageFailure(t *testing.T) {
	store, mr := setupStore(t)
	mr.Close()

	_, err := store.Add(context.Background(), &entity.User{Name: "a", Email: "b"})
	require.Error(t, err)
	assert.True(t, domainerrors.IsStorageFailure(err))

	_, err = store.FindByID(context.Background(), "any")
	require.Error(t, err)
	assert.True(t, domainerrors.IsStorageFailure(err))
}
