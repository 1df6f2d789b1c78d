package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/amar93190/Team-up/internal/domain/event"
)

type favoriteKey struct {
	eventID string
	userID  string
}

// EventRepository keeps events, registrations and favorites in maps. The
// NoFavoriteStatusColumn toggle simulates a store without the status column,
// forcing callers onto the presence fallback.
type EventRepository struct {
	mu            sync.RWMutex
	events        map[string]event.Event
	registrations map[favoriteKey]event.Registration
	favorites     map[favoriteKey]event.Favorite
	presence      map[favoriteKey]struct{}

	NoFavoriteStatusColumn bool
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		events:        make(map[string]event.Event),
		registrations: make(map[favoriteKey]event.Registration),
		favorites:     make(map[favoriteKey]event.Favorite),
		presence:      make(map[favoriteKey]struct{}),
	}
}

func (r *EventRepository) PutEvent(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = e
}

func (r *EventRepository) PutRegistration(reg event.Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations[favoriteKey{eventID: reg.EventID, userID: reg.UserID}] = reg
}

func (r *EventRepository) GetByIDs(_ context.Context, eventIDs []string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]event.Event, 0, len(eventIDs))
	for _, id := range eventIDs {
		if e, ok := r.events[id]; ok {
			items = append(items, e)
		}
	}
	return items, nil
}

func (r *EventRepository) ListApprovedByUser(_ context.Context, userID string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []event.Event
	for key, reg := range r.registrations {
		if key.userID != userID || reg.Status != event.RegistrationApproved {
			continue
		}
		if e, ok := r.events[key.eventID]; ok {
			items = append(items, e)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartsAt.Before(items[j].StartsAt) })
	return items, nil
}

func (r *EventRepository) UpsertFavorite(_ context.Context, f event.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.NoFavoriteStatusColumn {
		return fmt.Errorf("upsert favorite for event %s: %w", f.EventID, event.ErrStatusColumnUnavailable)
	}

	r.favorites[favoriteKey{eventID: f.EventID, userID: f.UserID}] = f
	return nil
}

func (r *EventRepository) SetFavoritePresence(_ context.Context, eventID, userID string, favorite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{eventID: eventID, userID: userID}
	if favorite {
		r.presence[key] = struct{}{}
	} else {
		delete(r.presence, key)
	}
	return nil
}

// FavoriteStatus reports the recorded state for assertions in tests.
func (r *EventRepository) FavoriteStatus(eventID, userID string) (event.FavoriteStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := favoriteKey{eventID: eventID, userID: userID}
	if f, ok := r.favorites[key]; ok {
		return f.Status, true
	}
	if _, ok := r.presence[key]; ok {
		return event.FavoriteActive, true
	}
	return "", false
}
