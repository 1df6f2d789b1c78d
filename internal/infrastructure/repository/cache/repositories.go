package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/domain/user"
	basecache "github.com/amar93190/Team-up/internal/platform/cache"
)

// EventRepository caches event reads. Favorite writes pass through and drop
// nothing: favorites never change the approved list or the event rows.
type EventRepository struct {
	next  event.Repository
	cache *basecache.Store
}

func NewEventRepository(next event.Repository, cache *basecache.Store) *EventRepository {
	return &EventRepository{next: next, cache: cache}
}

func (r *EventRepository) GetByIDs(ctx context.Context, eventIDs []string) ([]event.Event, error) {
	key := "event:ids:" + joinSorted(eventIDs)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, eventIDs)
		if err != nil {
			return nil, err
		}
		return append([]event.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]event.Event)
	return append([]event.Event(nil), items...), nil
}

func (r *EventRepository) ListApprovedByUser(ctx context.Context, userID string) ([]event.Event, error) {
	key := "event:approved:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListApprovedByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]event.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]event.Event)
	return append([]event.Event(nil), items...), nil
}

func (r *EventRepository) UpsertFavorite(ctx context.Context, f event.Favorite) error {
	return r.next.UpsertFavorite(ctx, f)
}

func (r *EventRepository) SetFavoritePresence(ctx context.Context, eventID, userID string, favorite bool) error {
	return r.next.SetFavoritePresence(ctx, eventID, userID, favorite)
}

type ProfileRepository struct {
	next  user.ProfileRepository
	cache *basecache.Store
}

func NewProfileRepository(next user.ProfileRepository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) ListProfilesByIDs(ctx context.Context, userIDs []string) ([]user.Profile, error) {
	key := "profile:ids:" + joinSorted(userIDs)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListProfilesByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		return append([]user.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]user.Profile)
	return append([]user.Profile(nil), items...), nil
}

func joinSorted(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
