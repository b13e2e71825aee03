package document

import (
	"context"
	"slices"
	"time"

	"polystore/internal/domain/entity"
	domainerrors "polystore/internal/domain/errors"
	"polystore/internal/domain/repository"
	"polystore/internal/errors"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

const (
	maxWatchRetries  = 5
	watchBaseBackoff = 10 * time.Millisecond
)

type userDocument struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (d *userDocument) toDomain() *entity.User {
	return &entity.User{ID: d.ID, Name: d.Name, Email: d.Email}
}

// UserStore keeps users as JSON documents. It implements both repository.UserRepository
// and repository.UserFinder.
type UserStore struct {
	client redis.UniversalClient
	keys   keyspace
}

// NewUserStore returns a store writing under keyPrefix.
func NewUserStore(client redis.UniversalClient, keyPrefix string) *UserStore {
	return &UserStore{client: client, keys: keyspace{prefix: keyPrefix}}
}

// Add assigns a fresh UUID and writes the document with its index entries atomically.
func (s *UserStore) Add(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	doc := &userDocument{ID: uuid.NewString(), Name: user.Name, Email: user.Email}
	data, err := json.Marshal(doc)
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to encode user document")
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.user(doc.ID), data, 0)
		pipe.SAdd(ctx, s.keys.users(), doc.ID)
		pipe.SAdd(ctx, s.keys.byName(doc.Name), doc.ID)
		pipe.SAdd(ctx, s.keys.byEmail(doc.Email), doc.ID)

		return nil
	})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to insert user document")
	}
	user.ID = doc.ID

	return repository.WriteResult{Affected: 1}, nil
}

// Update replaces name and email of an existing document and moves its index entries.
func (s *UserStore) Update(ctx context.Context, user *entity.User) (repository.WriteResult, error) {
	if user.ID == "" {
		return repository.WriteResult{}, nil
	}

	next := &userDocument{ID: user.ID, Name: user.Name, Email: user.Email}
	data, err := json.Marshal(next)
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to encode user document")
	}

	key := s.keys.user(user.ID)
	var affected int64
	err = s.watch(ctx, key, func(tx *redis.Tx) error {
		affected = 0
		prev, err := s.load(ctx, tx, user.ID)
		if err != nil || prev == nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if prev.Name != next.Name {
				pipe.SRem(ctx, s.keys.byName(prev.Name), next.ID)
				pipe.SAdd(ctx, s.keys.byName(next.Name), next.ID)
			}
			if prev.Email != next.Email {
				pipe.SRem(ctx, s.keys.byEmail(prev.Email), next.ID)
				pipe.SAdd(ctx, s.keys.byEmail(next.Email), next.ID)
			}

			return nil
		})
		if err == nil {
			affected = 1
		}

		return err
	})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to update user document")
	}

	return repository.WriteResult{Affected: affected}, nil
}

// Delete removes the document and its index entries.
func (s *UserStore) Delete(ctx context.Context, id string) (repository.WriteResult, error) {
	if id == "" {
		return repository.WriteResult{}, nil
	}

	key := s.keys.user(id)
	var affected int64
	err := s.watch(ctx, key, func(tx *redis.Tx) error {
		affected = 0
		prev, err := s.load(ctx, tx, id)
		if err != nil || prev == nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.SRem(ctx, s.keys.users(), id)
			pipe.SRem(ctx, s.keys.byName(prev.Name), id)
			pipe.SRem(ctx, s.keys.byEmail(prev.Email), id)

			return nil
		})
		if err == nil {
			affected = 1
		}

		return err
	})
	if err != nil {
		return repository.WriteResult{}, domainerrors.NewDatabaseExecuteError(err, "failed to delete user document")
	}

	return repository.WriteResult{Affected: affected}, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, nil
	}

	doc, err := s.load(ctx, s.client, id)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user document")
	}
	if doc == nil {
		return nil, nil
	}

	return doc.toDomain(), nil
}

func (s *UserStore) FindAll(ctx context.Context) ([]*entity.User, error) {
	return s.loadSet(ctx, s.keys.users())
}

func (s *UserStore) FindByName(ctx context.Context, name string) ([]*entity.User, error) {
	return s.loadSet(ctx, s.keys.byName(name))
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := s.loadSet(ctx, s.keys.byEmail(email))
	if err != nil || len(users) == 0 {
		return nil, err
	}

	return users[0], nil
}

// watch runs fn under WATCH key, retrying when another client touched the key first.
func (s *UserStore) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	backoff := retry.WithMaxRetries(maxWatchRetries, retry.NewExponential(watchBaseBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.client.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			return retry.RetryableError(err)
		}

		return err
	})
}

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *UserStore) load(ctx context.Context, cmd getter, id string) (*userDocument, error) {
	data, err := cmd.Get(ctx, s.keys.user(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc userDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "corrupt user document %s", id)
	}

	return &doc, nil
}

// loadSet reads every document whose id is a member of setKey, ordered by id.
// Ids whose document is gone are skipped.
func (s *UserStore) loadSet(ctx context.Context, setKey string) ([]*entity.User, error) {
	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read user index")
	}

	users := make([]*entity.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	slices.Sort(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.keys.user(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read user documents")
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var doc userDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "corrupt user document "+ids[i])
		}
		users = append(users, doc.toDomain())
	}

	return users, nil
}
