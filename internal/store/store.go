// Package store opens the configured database backend and prepares its tables.
package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tweet-api/internal/config"
	"tweet-api/internal/repository"
	"tweet-api/internal/repository/postgres"
	"tweet-api/internal/repository/sqlite"
)

// Repositories bundles the repositories backed by one database handle.
type Repositories struct {
	Users  repository.UserRepository
	Tweets repository.TweetRepository
	close  func()
}

func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open connects to the backend selected by cfg.Database.Driver and creates
// missing tables. Users are initialized first because tweets reference them.
func Open(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Repositories, error) {
	var repos *Repositories
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		repos = &Repositories{
			Users:  postgres.NewUserRepository(pool),
			Tweets: postgres.NewTweetRepository(pool),
			close:  pool.Close,
		}
		logger.Info("using postgres store")
	case config.DriverSQLite, "":
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		repos = &Repositories{
			Users:  sqlite.NewUserRepository(db),
			Tweets: sqlite.NewTweetRepository(db),
			close:  func() { _ = db.Close() },
		}
		logger.Infof("using sqlite store at %s", cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if err := repos.Users.Init(ctx); err != nil {
		repos.Close()
		return nil, fmt.Errorf("init user repository: %w", err)
	}
	if err := repos.Tweets.Init(ctx); err != nil {
		repos.Close()
		return nil, fmt.Errorf("init tweet repository: %w", err)
	}
	return repos, nil
}
