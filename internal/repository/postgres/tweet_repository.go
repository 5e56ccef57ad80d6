package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tweet-api/internal/domain"
	"tweet-api/internal/repository"
)

const createTweetsTable = `
CREATE TABLE IF NOT EXISTS tweets (
	id BIGSERIAL PRIMARY KEY,
	text TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_tweets_user_id ON tweets(user_id);
`

type TweetRepository struct {
	pool *pgxpool.Pool
}

func NewTweetRepository(pool *pgxpool.Pool) repository.TweetRepository {
	return &TweetRepository{pool: pool}
}

func (r *TweetRepository) Init(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createTweetsTable); err != nil {
		return fmt.Errorf("create tweets table: %w", err)
	}
	return nil
}

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (int64, error) {
	tweet.CreatedAt = time.Now().UTC().Truncate(time.Second)

	err := r.pool.QueryRow(ctx, `
INSERT INTO tweets (text, created_at, user_id)
VALUES ($1, $2, $3)
RETURNING id`,
		tweet.Text,
		tweet.CreatedAt,
		tweet.UserID,
	).Scan(&tweet.ID)
	if err != nil {
		return 0, fmt.Errorf("insert tweet: %w", err)
	}
	return tweet.ID, nil
}

func (r *TweetRepository) Get(ctx context.Context, id int64) (*domain.Tweet, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, text, created_at, user_id
FROM tweets
WHERE id = $1`,
		id,
	)
	return scanTweet(row)
}

func (r *TweetRepository) List(ctx context.Context) ([]domain.Tweet, error) {
	rows, err := r.pool.Query(ctx, `
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	return tweets, nil
}

func (r *TweetRepository) UpdateText(ctx context.Context, id int64, text string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tweets SET text = $1 WHERE id = $2`, text, id)
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	return expectOneRow(tag, "update tweet")
}

func (r *TweetRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	return expectOneRow(tag, "delete tweet")
}

func expectOneRow(tag pgconn.CommandTag, op string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

func scanTweet(row pgx.Row) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := row.Scan(
		&tweet.ID,
		&tweet.Text,
		&tweet.CreatedAt,
		&tweet.UserID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan tweet: %w", err)
	}
	tweet.CreatedAt = tweet.CreatedAt.UTC()
	return &tweet, nil
}
