package domain

import "time"

// User is an author identity. Users are provisioned out of band and are
// read-only to the tweet API.
type User struct {
	ID        int64
	Username  string
	Email     string
	APIKey    string
	CreatedAt time.Time
}
