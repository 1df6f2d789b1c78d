package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/platform/logging"
)

type ToggleFavoriteInput struct {
	UserID   string
	EventID  string
	Favorite bool
}

type EventService struct {
	eventRepo event.Repository
	logger    *logging.Logger
	now       func() time.Time
}

func NewEventService(eventRepo event.Repository, logger *logging.Logger) *EventService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *EventService) ListApprovedEvents(ctx context.Context, userID string) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.ListApprovedEvents")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	events, err := s.eventRepo.ListApprovedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list approved events by user: %w", err)
	}
	return events, nil
}

// ToggleFavorite records or clears the favorite mark. Stores that cannot hold
// a status column fall back to row presence: favorite means a row exists.
func (s *EventService) ToggleFavorite(ctx context.Context, input ToggleFavoriteInput) error {
	ctx, span := startUsecaseSpan(ctx, "EventService.ToggleFavorite")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.EventID = strings.TrimSpace(input.EventID)
	if input.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.EventID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	status := event.FavoriteCleared
	if input.Favorite {
		status = event.FavoriteActive
	}

	err := s.eventRepo.UpsertFavorite(ctx, event.Favorite{
		EventID:   input.EventID,
		UserID:    input.UserID,
		Status:    status,
		UpdatedAt: s.now().UTC(),
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, event.ErrStatusColumnUnavailable) {
		return fmt.Errorf("upsert event favorite: %w", err)
	}

	s.logger.WarnContext(ctx, "favorite status column unavailable, using presence fallback",
		"event_id", input.EventID,
	)
	if err := s.eventRepo.SetFavoritePresence(ctx, input.EventID, input.UserID, input.Favorite); err != nil {
		return fmt.Errorf("set event favorite presence: %w", err)
	}
	return nil
}
