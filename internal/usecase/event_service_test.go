package usecase

import (
	"errors"
	"testing"

	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/infrastructure/repository/memory"
)

func TestEventService_ListApprovedEvents(t *testing.T) {
	service := NewEventService(memory.SeedEventRepository(), nil)

	events, err := service.ListApprovedEvents(t.Context(), memory.UserIDSeedOwner)
	if err != nil {
		t.Fatalf("list approved events: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 approved events, got %d", len(events))
	}
	// pending registrations never surface.
	for _, e := range events {
		if e.ID == memory.EventIDBeachClean {
			t.Fatalf("pending event leaked into approved list")
		}
	}
	if !events[0].StartsAt.Before(events[1].StartsAt) {
		t.Fatalf("expected events ordered by start time")
	}
}

func TestEventService_ListApprovedEvents_RequiresUser(t *testing.T) {
	service := NewEventService(memory.SeedEventRepository(), nil)

	if _, err := service.ListApprovedEvents(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEventService_ToggleFavorite(t *testing.T) {
	repo := memory.SeedEventRepository()
	service := NewEventService(repo, nil)

	err := service.ToggleFavorite(t.Context(), ToggleFavoriteInput{
		UserID:   memory.UserIDSeedOwner,
		EventID:  memory.EventIDCityRun,
		Favorite: true,
	})
	if err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}

	status, ok := repo.FavoriteStatus(memory.EventIDCityRun, memory.UserIDSeedOwner)
	if !ok || status != event.FavoriteActive {
		t.Fatalf("expected active favorite, got %q ok=%v", status, ok)
	}

	err = service.ToggleFavorite(t.Context(), ToggleFavoriteInput{
		UserID:   memory.UserIDSeedOwner,
		EventID:  memory.EventIDCityRun,
		Favorite: false,
	})
	if err != nil {
		t.Fatalf("clear favorite: %v", err)
	}

	status, ok = repo.FavoriteStatus(memory.EventIDCityRun, memory.UserIDSeedOwner)
	if !ok || status != event.FavoriteCleared {
		t.Fatalf("expected cleared favorite, got %q ok=%v", status, ok)
	}
}

func TestEventService_ToggleFavorite_PresenceFallback(t *testing.T) {
	repo := memory.SeedEventRepository()
	repo.NoFavoriteStatusColumn = true
	service := NewEventService(repo, nil)

	err := service.ToggleFavorite(t.Context(), ToggleFavoriteInput{
		UserID:   memory.UserIDSeedOwner,
		EventID:  memory.EventIDCityRun,
		Favorite: true,
	})
	if err != nil {
		t.Fatalf("toggle favorite via fallback: %v", err)
	}

	if status, ok := repo.FavoriteStatus(memory.EventIDCityRun, memory.UserIDSeedOwner); !ok || status != event.FavoriteActive {
		t.Fatalf("expected presence row, got %q ok=%v", status, ok)
	}

	err = service.ToggleFavorite(t.Context(), ToggleFavoriteInput{
		UserID:   memory.UserIDSeedOwner,
		EventID:  memory.EventIDCityRun,
		Favorite: false,
	})
	if err != nil {
		t.Fatalf("clear favorite via fallback: %v", err)
	}

	if _, ok := repo.FavoriteStatus(memory.EventIDCityRun, memory.UserIDSeedOwner); ok {
		t.Fatalf("expected presence row to be removed")
	}
}

func TestEventService_ToggleFavorite_RequiresEvent(t *testing.T) {
	service := NewEventService(memory.SeedEventRepository(), nil)

	err := service.ToggleFavorite(t.Context(), ToggleFavoriteInput{UserID: "user-1"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
