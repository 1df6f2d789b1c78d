package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/amar93190/Team-up/internal/domain/event"
	eventmock "github.com/amar93190/Team-up/internal/mocks/domain/event"
)

func TestEventService_ToggleFavorite_PresenceFallbackUsingMockery(t *testing.T) {
	t.Parallel()

	eventRepo := eventmock.NewRepository(t)
	service := NewEventService(eventRepo, nil)

	eventRepo.
		On("UpsertFavorite", mock.Anything, mock.MatchedBy(func(f event.Favorite) bool {
			return f.EventID == "evt-1" && f.UserID == "user-1" && f.Status == event.FavoriteActive
		})).
		Return(fmt.Errorf("upsert favorite: %w", event.ErrStatusColumnUnavailable)).
		Once()
	eventRepo.
		On("SetFavoritePresence", mock.Anything, "evt-1", "user-1", true).
		Return(nil).
		Once()

	err := service.ToggleFavorite(t.Context(), ToggleFavoriteInput{
		UserID:   "user-1",
		EventID:  "evt-1",
		Favorite: true,
	})
	if err != nil {
		t.Fatalf("toggle favorite with fallback: %v", err)
	}
}

func TestEventService_ListApprovedEvents_UsingMockery(t *testing.T) {
	t.Parallel()

	eventRepo := eventmock.NewRepository(t)
	service := NewEventService(eventRepo, nil)

	eventRepo.
		On("ListApprovedByUser", mock.Anything, "user-1").
		Return([]event.Event{{ID: "evt-1"}, {ID: "evt-2"}}, nil).
		Once()

	events, err := service.ListApprovedEvents(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("list approved events: %v", err)
	}
	if len(events) != 2 || events[0].ID != "evt-1" {
		t.Fatalf("unexpected events: %+v", events)
	}
}
