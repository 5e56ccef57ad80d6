package service

import (
	"context"
	"fmt"
	"time"

	"tweet-api/internal/domain"
)

// TweetView is the public representation of a tweet with its author embedded.
type TweetView struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"created_at"`
	User      AuthorView `json:"user"`
}

// AuthorView never carries the api key or the numeric user id.
type AuthorView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewTweetView(tweet domain.Tweet, author domain.User) TweetView {
	return TweetView{
		ID:        tweet.ID,
		Text:      tweet.Text,
		CreatedAt: tweet.CreatedAt.UTC().Format(time.RFC3339),
		User: AuthorView{
			Username: author.Username,
			Email:    author.Email,
		},
	}
}

// AuthorJoin resolves tweet owners explicitly through UserService. Authors are
// memoized for the lifetime of one AuthorJoin, which callers scope to a single
// response.
type AuthorJoin struct {
	users UserService
	seen  map[int64]*domain.User
}

func NewAuthorJoin(users UserService) *AuthorJoin {
	return &AuthorJoin{
		users: users,
		seen:  make(map[int64]*domain.User),
	}
}

func (j *AuthorJoin) View(ctx context.Context, tweet domain.Tweet) (TweetView, error) {
	author, ok := j.seen[tweet.UserID]
	if !ok {
		var err error
		author, err = j.users.GetByID(ctx, tweet.UserID)
		if err != nil {
			return TweetView{}, fmt.Errorf("load author %d of tweet %d: %w", tweet.UserID, tweet.ID, err)
		}
		j.seen[tweet.UserID] = author
	}
	return NewTweetView(tweet, *author), nil
}

// Views joins every tweet in order.
func (j *AuthorJoin) Views(ctx context.Context, tweets []domain.Tweet) ([]TweetView, error) {
	views := make([]TweetView, len(tweets))
	for i := range tweets {
		v, err := j.View(ctx, tweets[i])
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}
