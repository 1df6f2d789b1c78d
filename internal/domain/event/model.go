package event

import "time"

type RegistrationStatus string

const (
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationRejected RegistrationStatus = "rejected"
)

type FavoriteStatus string

const (
	FavoriteActive  FavoriteStatus = "favorite"
	FavoriteCleared FavoriteStatus = "cleared"
)

type Event struct {
	ID          string
	Name        string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Registration struct {
	EventID   string
	UserID    string
	Status    RegistrationStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Favorite struct {
	EventID   string
	UserID    string
	Status    FavoriteStatus
	UpdatedAt time.Time
}
