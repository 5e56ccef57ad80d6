package service

import (
	"context"
	"errors"

	"tweet-api/internal/domain"
	"tweet-api/internal/repository"
)

// TweetService implements the tweet lifecycle. Mutating operations take the
// resolved caller; a nil caller is rejected with ErrUnauthorized before any
// store access. Every call re-reads the store.
type TweetService interface {
	ListTweets(ctx context.Context) ([]domain.Tweet, error)
	GetTweet(ctx context.Context, id int64) (*domain.Tweet, error)
	CreateTweet(ctx context.Context, caller *domain.User, text string) (*domain.Tweet, error)
	UpdateTweet(ctx context.Context, caller *domain.User, id int64, text string) (*domain.Tweet, error)
	DeleteTweet(ctx context.Context, caller *domain.User, id int64) error
}

type tweetService struct {
	tweets repository.TweetRepository
}

func NewTweetService(tweets repository.TweetRepository) TweetService {
	return &tweetService{tweets: tweets}
}

func (s *tweetService) ListTweets(ctx context.Context) ([]domain.Tweet, error) {
	return s.tweets.List(ctx)
}

func (s *tweetService) GetTweet(ctx context.Context, id int64) (*domain.Tweet, error) {
	tweet, err := s.tweets.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return tweet, nil
}

func (s *tweetService) CreateTweet(ctx context.Context, caller *domain.User, text string) (*domain.Tweet, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if len(text) == 0 {
		return nil, ErrEmptyText
	}

	tweet := &domain.Tweet{
		Text:   text,
		UserID: caller.ID,
	}
	if _, err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// UpdateTweet replaces the text of a tweet owned by caller. Unlike CreateTweet
// it accepts empty text.
func (s *tweetService) UpdateTweet(ctx context.Context, caller *domain.User, id int64, text string) (*domain.Tweet, error) {
	tweet, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.tweets.UpdateText(ctx, id, text); err != nil {
		return nil, translate(err)
	}
	tweet.Text = text
	return tweet, nil
}

func (s *tweetService) DeleteTweet(ctx context.Context, caller *domain.User, id int64) error {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return err
	}
	return translate(s.tweets.Delete(ctx, id))
}

// authorize runs the checks shared by update and delete, in order:
// caller present, tweet exists, caller owns tweet.
func (s *tweetService) authorize(ctx context.Context, caller *domain.User, id int64) (*domain.Tweet, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	tweet, err := s.tweets.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if !CanMutate(caller, tweet) {
		return nil, ErrForbidden
	}
	return tweet, nil
}

func translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
