package usecase

import (
	"context"

	"github.com/amar93190/Team-up/internal/domain/team"
)

// TeamNotifier publishes team lifecycle events to interested listeners.
// Implementations must not block the request path.
type TeamNotifier interface {
	TeamCreated(ctx context.Context, t team.Team)
	MemberJoined(ctx context.Context, t team.Team, m team.Membership)
}

type NopTeamNotifier struct{}

func (NopTeamNotifier) TeamCreated(context.Context, team.Team)                  {}
func (NopTeamNotifier) MemberJoined(context.Context, team.Team, team.Membership) {}
