package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/tweets.db", cfg.Database.Path)
	assert.Equal(t, "tweet-exports", cfg.Archive.KeyPrefix)
	assert.Equal(t, "us-east-1", cfg.Archive.Region)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TWEET_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("TWEET_DATABASE_DRIVER", "Postgres")
	t.Setenv("TWEET_DATABASE_URL", "postgres://localhost/tweets")
	t.Setenv("TWEET_ARCHIVE_BUCKET", "backups")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/tweets", cfg.Database.URL)
	assert.Equal(t, "backups", cfg.Archive.Bucket)
}

func TestLoadRejectsPostgresWithoutURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TWEET_DATABASE_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TWEET_DATABASE_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	env := "# local overrides\nTWEET_SERVER_ADDR=127.0.0.1:7000\nTWEET_ARCHIVE_BUCKET=\"from-dotenv\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	// godotenv sets process variables; register them so they are restored afterwards
	t.Setenv("TWEET_SERVER_ADDR", "")
	t.Setenv("TWEET_ARCHIVE_BUCKET", "from-env")
	os.Unsetenv("TWEET_SERVER_ADDR")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Archive.Bucket)
}

// chdir switches the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
