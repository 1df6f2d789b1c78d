package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/amar93190/Team-up/internal/usecase"
)

func (h *Handler) ListApprovedEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListApprovedEvents")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	events, err := h.eventService.ListApprovedEvents(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list approved events failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(ctx, e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetEventFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetEventFavorite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	eventID := strings.TrimSpace(r.PathValue("eventID"))

	var req setFavoriteRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.eventService.ToggleFavorite(ctx, usecase.ToggleFavoriteInput{
		UserID:   principal.UserID,
		EventID:  eventID,
		Favorite: req.Favorite,
	}); err != nil {
		h.logger.WarnContext(ctx, "set event favorite failed", "user_id", principal.UserID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"favorite": req.Favorite})
}
