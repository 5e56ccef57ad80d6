// Package export writes snapshots of all tweets to object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tweet-api/internal/service"
	"tweet-api/internal/storage"
)

type Config struct {
	Bucket    string
	KeyPrefix string
	Logger    *logrus.Logger
	// Now is used for the snapshot timestamp; defaults to time.Now.
	Now func() time.Time
}

// Snapshot is the document uploaded for each export.
type Snapshot struct {
	ExportedAt string              `json:"exported_at"`
	Count      int                 `json:"count"`
	Tweets     []service.TweetView `json:"tweets"`
}

type Exporter struct {
	cfg     Config
	tweets  service.TweetService
	users   service.UserService
	storage storage.Service
}

func NewExporter(cfg Config, tweets service.TweetService, users service.UserService, store storage.Service) *Exporter {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &Exporter{
		cfg:     cfg,
		tweets:  tweets,
		users:   users,
		storage: store,
	}
}

// Run uploads one snapshot and returns its location.
func (e *Exporter) Run(ctx context.Context) (string, error) {
	if e.cfg.Bucket == "" {
		return "", fmt.Errorf("archive bucket is required")
	}

	tweets, err := e.tweets.ListTweets(ctx)
	if err != nil {
		return "", fmt.Errorf("list tweets: %w", err)
	}
	views, err := service.NewAuthorJoin(e.users).Views(ctx, tweets)
	if err != nil {
		return "", err
	}

	now := e.cfg.Now().UTC()
	body, err := json.Marshal(Snapshot{
		ExportedAt: now.Format(time.RFC3339),
		Count:      len(views),
		Tweets:     views,
	})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := e.objectKey(now)
	location, err := e.storage.Upload(ctx, e.cfg.Bucket, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	e.cfg.Logger.Infof("exported %d tweets to %s", len(views), location)
	return location, nil
}

// List returns previous snapshots under the configured prefix.
func (e *Exporter) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	if e.cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}
	prefix := ""
	if e.cfg.KeyPrefix != "" {
		prefix = e.cfg.KeyPrefix + "/"
	}
	return e.storage.ListObjects(ctx, e.cfg.Bucket, prefix)
}

func (e *Exporter) objectKey(at time.Time) string {
	name := fmt.Sprintf("tweets-%s.json", at.Format("20060102T150405Z"))
	if e.cfg.KeyPrefix == "" {
		return name
	}
	return e.cfg.KeyPrefix + "/" + name
}
