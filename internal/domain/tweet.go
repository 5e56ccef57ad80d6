package domain

import "time"

// Tweet is a short text post. UserID is fixed at creation and never reassigned.
type Tweet struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	UserID    int64
}
