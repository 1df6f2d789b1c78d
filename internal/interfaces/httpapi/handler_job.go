package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/amar93190/Team-up/internal/usecase"
)

// Notification jobs are published to the queue at write time and delivered
// back here by the queue worker. Delivery is acknowledged with a 2xx; any
// other status makes the queue redeliver per its retry policy.

func (h *Handler) RunTeamCreatedNotifyJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunTeamCreatedNotifyJob")
	defer span.End()

	var req notifyTeamCreatedRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	delivered, err := h.notificationService.NotifyTeamCreated(ctx, req.TeamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "team created notification processed",
		"team_id", req.TeamID,
		"event_id", req.EventID,
		"owner_user_id", req.OwnerUserID,
		"delivered", delivered,
	)
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"processed": true, "delivered": delivered})
}

func (h *Handler) RunMemberJoinedNotifyJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMemberJoinedNotifyJob")
	defer span.End()

	var req notifyMemberJoinedRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	delivered, err := h.notificationService.NotifyMemberJoined(ctx, req.TeamID, req.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "member joined notification processed",
		"team_id", req.TeamID,
		"user_id", req.UserID,
		"role", req.Role,
		"delivered", delivered,
	)
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"processed": true, "delivered": delivered})
}
