package repository

import (
	"context"

	"tweet-api/internal/domain"
)

// TweetRepository exposes persistence operations for tweets.
// Get, UpdateText and Delete return ErrNotFound for unknown ids.
type TweetRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tweet *domain.Tweet) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Tweet, error)
	List(ctx context.Context) ([]domain.Tweet, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
}
