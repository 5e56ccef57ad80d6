package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tweet-api/internal/domain"
	"tweet-api/internal/repository"
)

func newRepos(t *testing.T) (repository.UserRepository, repository.TweetRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "tweets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := NewUserRepository(db)
	tweets := NewTweetRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, tweets.Init(ctx))
	return users, tweets
}

func createUser(t *testing.T, users repository.UserRepository, name, key string) *domain.User {
	t.Helper()
	user := &domain.User{Username: name, Email: name + "@example.com", APIKey: key}
	_, err := users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserRepositoryLookups(t *testing.T) {
	users, _ := newRepos(t)
	ctx := context.Background()

	alice := createUser(t, users, "alice", "key-alice")
	assert.NotZero(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	byKey, err := users.GetByAPIKey(ctx, "key-alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byKey.ID)
	assert.Equal(t, "alice@example.com", byKey.Email)

	byID, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = users.GetByAPIKey(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByID(ctx, alice.ID+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryRejectsDuplicateKey(t *testing.T) {
	users, _ := newRepos(t)
	createUser(t, users, "alice", "shared")

	_, err := users.Create(context.Background(), &domain.User{Username: "bob", Email: "bob@example.com", APIKey: "shared"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestTweetRepositoryLifecycle(t *testing.T) {
	users, tweets := newRepos(t)
	ctx := context.Background()
	alice := createUser(t, users, "alice", "k1")

	list, err := tweets.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	first := &domain.Tweet{Text: "hello", UserID: alice.ID}
	id1, err := tweets.Create(ctx, first)
	require.NoError(t, err)
	second := &domain.Tweet{Text: "world", UserID: alice.ID}
	id2, err := tweets.Create(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	got, err := tweets.Get(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, alice.ID, got.UserID)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, tweets.UpdateText(ctx, id1, "edited"))
	got, err = tweets.Get(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	list, err = tweets.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID)
	assert.Equal(t, id2, list[1].ID)

	require.NoError(t, tweets.Delete(ctx, id1))
	_, err = tweets.Get(ctx, id1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTweetRepositoryMissingRows(t *testing.T) {
	_, tweets := newRepos(t)
	ctx := context.Background()

	_, err := tweets.Get(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, tweets.UpdateText(ctx, 42, "x"), repository.ErrNotFound)
	assert.ErrorIs(t, tweets.Delete(ctx, 42), repository.ErrNotFound)
}

func TestTweetRepositoryRequiresExistingOwner(t *testing.T) {
	_, tweets := newRepos(t)

	_, err := tweets.Create(context.Background(), &domain.Tweet{Text: "orphan", UserID: 999})
	assert.Error(t, err)
}

func TestUserRepositoryConflictsOnEachUniqueColumn(t *testing.T) {
	users, _ := newRepos(t)
	createUser(t, users, "alice", "k1")
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com", APIKey: "k2"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = users.Create(ctx, &domain.User{Username: "bob", Email: "alice@example.com", APIKey: "k3"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestIsUniqueViolationIgnoresOtherConstraints(t *testing.T) {
	users, tweets := newRepos(t)
	createUser(t, users, "alice", "k1")

	_, err := tweets.Create(context.Background(), &domain.Tweet{Text: "orphan", UserID: 999})
	require.Error(t, err)
	assert.False(t, isUniqueViolation(err))
	assert.NotErrorIs(t, err, repository.ErrConflict)

	assert.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.username")))
}
