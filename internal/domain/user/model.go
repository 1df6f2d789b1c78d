package user

import "time"

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}

type Profile struct {
	UserID    string
	FirstName string
	LastName  string
	AvatarURL string
	UpdatedAt time.Time
}
