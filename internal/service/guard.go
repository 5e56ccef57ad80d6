package service

import "tweet-api/internal/domain"

// CanMutate reports whether user owns tweet and may therefore update or delete it.
func CanMutate(user *domain.User, tweet *domain.Tweet) bool {
	if user == nil || tweet == nil {
		return false
	}
	return user.ID == tweet.UserID
}
