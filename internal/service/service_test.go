package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tweet-api/internal/domain"
	"tweet-api/internal/repository"
	"tweet-api/internal/repository/sqlite"
)

type fixture struct {
	users     UserService
	tweets    TweetService
	userRepo  repository.UserRepository
	tweetRepo repository.TweetRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "tweets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	tweetRepo := sqlite.NewTweetRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, tweetRepo.Init(ctx))

	return &fixture{
		users:     NewUserService(userRepo),
		tweets:    NewTweetService(tweetRepo),
		userRepo:  userRepo,
		tweetRepo: tweetRepo,
	}
}

func (f *fixture) register(t *testing.T, name, key string) *domain.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), name, name+"@example.com", key)
	require.NoError(t, err)
	return user
}
