package service

import "errors"

var (
	// ErrUnauthorized indicates that no valid api key was presented.
	ErrUnauthorized = errors.New("api_key not valid")
	// ErrNotFound indicates that the referenced tweet does not exist.
	ErrNotFound = errors.New("tweet not found")
	// ErrForbidden indicates that the caller does not own the tweet.
	ErrForbidden = errors.New("not allowed to modify this tweet")
	// ErrEmptyText indicates a create request with zero-length text.
	ErrEmptyText = errors.New("tweet text can't be empty")
	// ErrUserAlreadyExists is returned when a username, email or api key is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)
