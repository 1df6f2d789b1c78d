package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/amar93190/Team-up/internal/domain/team"
	"github.com/amar93190/Team-up/internal/platform/logging"
)

const pushDispatchParallel = 4

// Push is the payload handed to the delivery provider per recipient.
type Push struct {
	Title string
	Body  string
}

// PushSender delivers a push to a single user through the external provider.
type PushSender interface {
	SendPush(ctx context.Context, userID string, p Push) error
}

// NotificationService turns queued team lifecycle jobs into per-member push
// dispatches. It resolves the roster at delivery time, so members who left
// between enqueue and callback are not notified.
type NotificationService struct {
	teamRepo team.Repository
	sender   PushSender
	logger   *logging.Logger
}

func NewNotificationService(teamRepo team.Repository, sender PushSender, logger *logging.Logger) *NotificationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &NotificationService{
		teamRepo: teamRepo,
		sender:   sender,
		logger:   logger,
	}
}

// NotifyTeamCreated confirms the creation to the owner. It returns the number
// of pushes handed to the sender.
func (s *NotificationService) NotifyTeamCreated(ctx context.Context, teamID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "NotificationService.NotifyTeamCreated")
	defer span.End()

	t, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}

	return s.fanOut(ctx, []string{t.OwnerUserID}, Push{
		Title: "Team created",
		Body:  fmt.Sprintf("Your team %q is ready. Share code %s to invite members.", t.Name, t.InviteCode),
	}), nil
}

// NotifyMemberJoined pushes to every member except the joiner. It returns the
// number of pushes handed to the sender.
func (s *NotificationService) NotifyMemberJoined(ctx context.Context, teamID, joinedUserID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "NotificationService.NotifyMemberJoined")
	defer span.End()

	joinedUserID = strings.TrimSpace(joinedUserID)
	if joinedUserID == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	t, err := s.loadTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}
	members, err := s.teamRepo.ListMembers(ctx, t.ID)
	if err != nil {
		return 0, fmt.Errorf("list team members: %w", err)
	}

	targets := make([]string, 0, len(members))
	for _, m := range members {
		if m.UserID == joinedUserID {
			continue
		}
		targets = append(targets, m.UserID)
	}

	return s.fanOut(ctx, targets, Push{
		Title: "New teammate",
		Body:  fmt.Sprintf("Someone joined your team %q.", t.Name),
	}), nil
}

func (s *NotificationService) loadTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team not found", ErrNotFound)
	}
	return t, nil
}

// fanOut delivers best-effort: send failures are logged per target and never
// fail the job, so the queue does not redeliver for a partially reachable
// roster.
func (s *NotificationService) fanOut(ctx context.Context, targets []string, push Push) int {
	if s.sender == nil || len(targets) == 0 {
		return 0
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(pushDispatchParallel)
	for _, target := range targets {
		p.Go(func(ctx context.Context) error {
			if err := s.sender.SendPush(ctx, target, push); err != nil {
				s.logger.WarnContext(ctx, "push dispatch failed", "user_id", target, "error", err)
			}
			return nil
		})
	}
	_ = p.Wait()

	return len(targets)
}
