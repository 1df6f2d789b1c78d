package memory

import (
	"context"
	"sync"

	"github.com/amar93190/Team-up/internal/domain/user"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[string]user.Profile)}
}

func (r *ProfileRepository) Put(p user.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.UserID] = p
}

func (r *ProfileRepository) ListProfilesByIDs(_ context.Context, userIDs []string) ([]user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]user.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.items[id]; ok {
			items = append(items, p)
		}
	}
	return items, nil
}
