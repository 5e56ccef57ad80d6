package store

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tweet-api/internal/config"
	"tweet-api/internal/domain"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestOpenSQLiteCreatesTables(t *testing.T) {
	var cfg config.Config
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "tweets.db")

	ctx := context.Background()
	repos, err := Open(ctx, cfg, quietLogger())
	require.NoError(t, err)
	defer repos.Close()

	user := &domain.User{Username: "alice", Email: "alice@example.com", APIKey: "k1"}
	_, err = repos.Users.Create(ctx, user)
	require.NoError(t, err)

	tweet := &domain.Tweet{Text: "hello", UserID: user.ID}
	_, err = repos.Tweets.Create(ctx, tweet)
	require.NoError(t, err)

	tweets, err := repos.Tweets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tweets, 1)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.Database.Driver = "oracle"

	_, err := Open(context.Background(), cfg, quietLogger())
	assert.ErrorContains(t, err, "unsupported database driver")
}
