package cache

import (
	"testing"
	"time"

	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/infrastructure/repository/memory"
	basecache "github.com/amar93190/Team-up/internal/platform/cache"
)

func TestEventRepository_ListApprovedByUserIsCached(t *testing.T) {
	backing := memory.SeedEventRepository()
	repo := NewEventRepository(backing, basecache.NewStore(time.Minute))

	first, err := repo.ListApprovedByUser(t.Context(), memory.UserIDSeedOwner)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}

	// a new registration is invisible until the entry expires.
	backing.PutRegistration(event.Registration{
		EventID: memory.EventIDBeachClean,
		UserID:  memory.UserIDSeedOwner,
		Status:  event.RegistrationApproved,
	})

	second, err := repo.ListApprovedByUser(t.Context(), memory.UserIDSeedOwner)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected cached result, got %d then %d events", len(first), len(second))
	}
}

func TestProfileRepository_KeyIgnoresIDOrder(t *testing.T) {
	repo := NewProfileRepository(memory.SeedProfileRepository(), basecache.NewStore(time.Minute))

	a, err := repo.ListProfilesByIDs(t.Context(), []string{memory.UserIDSeedOwner, memory.UserIDSeedMember})
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	b, err := repo.ListProfilesByIDs(t.Context(), []string{memory.UserIDSeedMember, memory.UserIDSeedOwner})
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected both reads to return 2 profiles, got %d and %d", len(a), len(b))
	}
}
