package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tweet-api/internal/domain"
	"tweet-api/internal/repository"
)

const createTweetsTable = `
CREATE TABLE IF NOT EXISTS tweets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	user_id INTEGER NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_tweets_user_id ON tweets(user_id);
`

type TweetRepository struct {
	db *sql.DB
}

func NewTweetRepository(db *sql.DB) repository.TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTweetsTable); err != nil {
		return fmt.Errorf("create tweets table: %w", err)
	}
	return nil
}

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (int64, error) {
	tweet.CreatedAt = time.Now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tweets (text, created_at, user_id)
VALUES (?, ?, ?)`,
		tweet.Text,
		tweet.CreatedAt,
		tweet.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert tweet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	tweet.ID = id
	return id, nil
}

func (r *TweetRepository) Get(ctx context.Context, id int64) (*domain.Tweet, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, text, created_at, user_id
FROM tweets
WHERE id=?`,
		id,
	)
	return scanTweet(row)
}

func (r *TweetRepository) List(ctx context.Context) ([]domain.Tweet, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, text, created_at, user_id
FROM tweets
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tweets: %w", err)
	}
	defer rows.Close()

	tweets := []domain.Tweet{}
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, *tweet)
	}

	return tweets, rows.Err()
}

func (r *TweetRepository) UpdateText(ctx context.Context, id int64, text string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE tweets
SET text=?
WHERE id=?`,
		text,
		id,
	)
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	return expectOneRow(res, "update tweet")
}

func (r *TweetRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tweets WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	return expectOneRow(res, "delete tweet")
}

func expectOneRow(res sql.Result, op string) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

func scanTweet(scanner interface {
	Scan(dest ...any) error
}) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := scanner.Scan(
		&tweet.ID,
		&tweet.Text,
		&tweet.CreatedAt,
		&tweet.UserID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan tweet: %w", err)
	}
	tweet.CreatedAt = tweet.CreatedAt.UTC()
	return &tweet, nil
}
