package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tweet-api/internal/domain"
	"tweet-api/internal/repository"
)

// UserService describes user lookups and provisioning.
type UserService interface {
	// Resolve maps an api key to its owner. It returns nil, nil when the key is
	// empty or unknown; errors are reserved for store failures.
	Resolve(ctx context.Context, apiKey string) (*domain.User, error)
	Register(ctx context.Context, username, email, apiKey string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Resolve(ctx context.Context, apiKey string) (*domain.User, error) {
	if apiKey == "" {
		return nil, nil
	}
	user, err := s.users.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve api key: %w", err)
	}
	return user, nil
}

// Register provisions a user. A random api key is generated when apiKey is empty.
func (s *userService) Register(ctx context.Context, username, email, apiKey string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	apiKey = strings.TrimSpace(apiKey)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if apiKey == "" {
		apiKey = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		APIKey:   apiKey,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
