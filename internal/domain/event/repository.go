package event

import (
	"context"
	"errors"
)

// ErrStatusColumnUnavailable signals that the favorites table lacks the
// status column and callers should use the presence-based fallback.
var ErrStatusColumnUnavailable = errors.New("favorite status column unavailable")

type Repository interface {
	GetByIDs(ctx context.Context, eventIDs []string) ([]Event, error)
	// ListApprovedByUser returns the events where the user holds an approved
	// registration, ordered by start time.
	ListApprovedByUser(ctx context.Context, userID string) ([]Event, error)
	// UpsertFavorite records the favorite status for the pair; it returns
	// ErrStatusColumnUnavailable when the store cannot hold a status.
	UpsertFavorite(ctx context.Context, f Favorite) error
	// SetFavoritePresence is the fallback write: a row marks a favorite and
	// its absence marks a cleared one.
	SetFavoritePresence(ctx context.Context, eventID, userID string, favorite bool) error
}
