package notifyqueue

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/amar93190/Team-up/internal/domain/team"
	"github.com/amar93190/Team-up/internal/platform/logging"
)

const (
	pathTeamCreated  = "/jobs/notify/team-created"
	pathMemberJoined = "/jobs/notify/member-joined"

	dispatchTimeout = 10 * time.Second
)

type teamCreatedPayload struct {
	TeamID      string `json:"team_id"`
	EventID     string `json:"event_id"`
	OwnerUserID string `json:"owner_user_id"`
	Name        string `json:"name"`
}

type memberJoinedPayload struct {
	TeamID  string `json:"team_id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

// Notifier publishes team lifecycle notifications off the request path. Work
// is handed to a shared worker pool; a saturated pool falls back to inline
// publishing rather than dropping the notification.
type Notifier struct {
	publisher *Publisher
	pool      *ants.Pool
	logger    *logging.Logger
}

func NewNotifier(publisher *Publisher, pool *ants.Pool, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Notifier{
		publisher: publisher,
		pool:      pool,
		logger:    logger,
	}
}

func (n *Notifier) TeamCreated(ctx context.Context, t team.Team) {
	payload := teamCreatedPayload{
		TeamID:      t.ID,
		EventID:     t.EventID,
		OwnerUserID: t.OwnerUserID,
		Name:        t.Name,
	}
	n.dispatch(ctx, pathTeamCreated, payload, "team-created:"+t.ID)
}

func (n *Notifier) MemberJoined(ctx context.Context, t team.Team, m team.Membership) {
	payload := memberJoinedPayload{
		TeamID:  t.ID,
		EventID: t.EventID,
		UserID:  m.UserID,
		Role:    string(m.Role),
	}
	n.dispatch(ctx, pathMemberJoined, payload, "member-joined:"+t.ID+":"+m.UserID)
}

func (n *Notifier) dispatch(ctx context.Context, path string, payload any, deduplicationID string) {
	if n.publisher == nil {
		return
	}

	// the publish outlives the request, so detach from its cancellation.
	detached := context.WithoutCancel(ctx)
	publish := func() {
		publishCtx, cancel := context.WithTimeout(detached, dispatchTimeout)
		defer cancel()

		if err := n.publisher.Enqueue(publishCtx, path, payload, 0, deduplicationID); err != nil {
			n.logger.ErrorContext(publishCtx, "publish team notification failed",
				"path", path,
				"deduplication_id", deduplicationID,
				"error", err,
			)
		}
	}

	if n.pool == nil {
		go publish()
		return
	}
	if err := n.pool.Submit(publish); err != nil {
		n.logger.WarnContext(ctx, "notification pool saturated, publishing inline", "path", path, "error", err)
		publish()
	}
}
