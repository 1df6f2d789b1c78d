package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/amar93190/Team-up/internal/domain/event"
	"github.com/amar93190/Team-up/internal/domain/team"
	"github.com/amar93190/Team-up/internal/domain/user"
	idgen "github.com/amar93190/Team-up/internal/platform/id"
	"github.com/amar93190/Team-up/internal/platform/invitecode"
	"github.com/amar93190/Team-up/internal/platform/logging"
)

const (
	inviteCodeAttempts    = 5
	profileLookupChunk    = 50
	profileLookupParallel = 4
)

type CreateTeamInput struct {
	UserID  string
	EventID string
	Name    string
	Size    int
}

type JoinTeamInput struct {
	UserID     string
	InviteCode string
}

type JoinTeamResult struct {
	Team       team.Team
	Membership team.Membership
}

type TeamService struct {
	teamRepo    team.Repository
	eventRepo   event.Repository
	profileRepo user.ProfileRepository
	codeGen     invitecode.Generator
	idGen       idgen.Generator
	notifier    TeamNotifier
	logger      *logging.Logger
	now         func() time.Time
	sleep       func(time.Duration)
}

func NewTeamService(
	teamRepo team.Repository,
	eventRepo event.Repository,
	profileRepo user.ProfileRepository,
	codeGen invitecode.Generator,
	idGen idgen.Generator,
	notifier TeamNotifier,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TeamService{
		teamRepo:    teamRepo,
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		codeGen:     codeGen,
		idGen:       idGen,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// CreateTeam persists a new team together with its owner membership. Invite
// codes are allocated optimistically: on a code collision the store rejects
// the insert and a fresh code is drawn, up to inviteCodeAttempts times.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.CreateTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.EventID = strings.TrimSpace(input.EventID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	newTeam := team.Team{
		ID:          teamID,
		EventID:     input.EventID,
		OwnerUserID: input.UserID,
		Name:        input.Name,
		Size:        input.Size,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := team.ValidateNew(newTeam); err != nil {
		return team.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	if err := s.requireApprovedRegistration(ctx, input.UserID, input.EventID); err != nil {
		return team.Team{}, err
	}

	owner := team.Membership{
		TeamID:    teamID,
		UserID:    input.UserID,
		Role:      team.RoleOwner,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 1; attempt <= inviteCodeAttempts; attempt++ {
		code, err := s.codeGen.Generate()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate invite code: %w", err)
		}
		newTeam.InviteCode = code

		err = s.teamRepo.CreateWithOwner(ctx, newTeam, owner)
		if err == nil {
			if s.notifier != nil {
				s.notifier.TeamCreated(ctx, newTeam)
			}
			return newTeam, nil
		}
		if !errors.Is(err, team.ErrDuplicateInviteCode) {
			return team.Team{}, fmt.Errorf("create team with owner: %w", err)
		}

		s.logger.WarnContext(ctx, "invite code collision, retrying",
			"team_id", teamID,
			"attempt", attempt,
		)
		s.sleep(time.Duration(attempt) * 10 * time.Millisecond)
	}

	return team.Team{}, fmt.Errorf("%w: gave up after %d attempts", ErrInviteCodesExhausted, inviteCodeAttempts)
}

// requireApprovedRegistration gates team creation: the event must exist and
// the owner must hold an approved registration for it.
func (s *TeamService) requireApprovedRegistration(ctx context.Context, userID, eventID string) error {
	events, err := s.eventRepo.GetByIDs(ctx, []string{eventID})
	if err != nil {
		return fmt.Errorf("get event by id: %w", err)
	}
	if len(events) == 0 {
		return fmt.Errorf("%w: event not found", ErrNotFound)
	}

	approved, err := s.eventRepo.ListApprovedByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list approved events by user: %w", err)
	}
	for _, e := range approved {
		if e.ID == eventID {
			return nil
		}
	}
	return fmt.Errorf("%w: registration for event %s is not approved", ErrUnauthorized, eventID)
}

// JoinByCode admits the caller to the team behind the invite code. A user
// already on the roster re-joins without consuming a seat; a full team
// surfaces team.ErrTeamFull untouched so transports can map it.
func (s *TeamService) JoinByCode(ctx context.Context, input JoinTeamInput) (JoinTeamResult, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.JoinByCode")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.InviteCode = invitecode.Normalize(input.InviteCode)
	if input.UserID == "" {
		return JoinTeamResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.InviteCode == "" {
		return JoinTeamResult{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	found, exists, err := s.teamRepo.GetByInviteCode(ctx, input.InviteCode)
	if err != nil {
		return JoinTeamResult{}, fmt.Errorf("get team by invite code: %w", err)
	}
	if !exists {
		return JoinTeamResult{}, fmt.Errorf("%w: invite code not found", ErrNotFound)
	}

	membership, err := s.teamRepo.Join(ctx, found.ID, input.UserID)
	if err != nil {
		if errors.Is(err, team.ErrTeamFull) {
			return JoinTeamResult{}, fmt.Errorf("join team %s: %w", found.ID, err)
		}
		return JoinTeamResult{}, fmt.Errorf("join team: %w", err)
	}

	if s.notifier != nil {
		s.notifier.MemberJoined(ctx, found, membership)
	}

	return JoinTeamResult{Team: found, Membership: membership}, nil
}

// ListMyTeams returns the teams the user belongs to, newest first. When the
// joined read is rejected by the store's row policy, or comes back empty
// while membership rows exist (row policies commonly null the joined relation
// without erroring), membership ids are listed directly and the teams fetched
// by id.
func (s *TeamService) ListMyTeams(ctx context.Context, userID, eventID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListMyTeams")
	defer span.End()

	userID = strings.TrimSpace(userID)
	eventID = strings.TrimSpace(eventID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListTeamsByUser(ctx, userID)
	switch {
	case errors.Is(err, team.ErrPolicyDenied):
		s.logger.WarnContext(ctx, "joined team read denied, falling back to id lookup", "user_id", userID)
		teams, err = s.listTeamsViaMemberships(ctx, userID)
	case err == nil && len(teams) == 0:
		teams, err = s.listTeamsViaMemberships(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list teams by user: %w", err)
	}

	if eventID != "" {
		filtered := teams[:0]
		for _, t := range teams {
			if t.EventID == eventID {
				filtered = append(filtered, t)
			}
		}
		teams = filtered
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].CreatedAt.After(teams[j].CreatedAt)
	})

	return teams, nil
}

func (s *TeamService) listTeamsViaMemberships(ctx context.Context, userID string) ([]team.Team, error) {
	memberships, err := s.teamRepo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}
	if len(memberships) == 0 {
		return nil, nil
	}

	teamIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		teamIDs = append(teamIDs, m.TeamID)
	}

	teams, err := s.teamRepo.ListTeamsByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list teams by ids: %w", err)
	}
	return teams, nil
}

// ListMemberProfiles returns the roster of a team the caller belongs to,
// owner first then by join time. The privileged aggregate is preferred; when
// it is unavailable the roster is stitched from memberships and profile rows.
func (s *TeamService) ListMemberProfiles(ctx context.Context, callerID, teamID string) ([]team.MemberProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListMemberProfiles")
	defer span.End()

	callerID = strings.TrimSpace(callerID)
	teamID = strings.TrimSpace(teamID)
	if callerID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team not found", ErrNotFound)
	}

	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	isMember := false
	for _, m := range members {
		if m.UserID == callerID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, fmt.Errorf("%w: you are not a member of this team", ErrUnauthorized)
	}

	profiles, err := s.teamRepo.ListMemberProfiles(ctx, teamID)
	if err == nil {
		return profiles, nil
	}
	if !errors.Is(err, team.ErrAggregateUnavailable) {
		return nil, fmt.Errorf("list member profiles: %w", err)
	}

	s.logger.WarnContext(ctx, "member profile aggregate unavailable, stitching roster", "team_id", teamID)
	return s.stitchMemberProfiles(ctx, members)
}

func (s *TeamService) stitchMemberProfiles(ctx context.Context, members []team.Membership) ([]team.MemberProfile, error) {
	ordered := make([]team.Membership, len(members))
	copy(ordered, members)
	sort.Slice(ordered, func(i, j int) bool {
		if (ordered[i].Role == team.RoleOwner) != (ordered[j].Role == team.RoleOwner) {
			return ordered[i].Role == team.RoleOwner
		}
		return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
	})

	userIDs := make([]string, 0, len(ordered))
	for _, m := range ordered {
		userIDs = append(userIDs, m.UserID)
	}

	p := pool.NewWithResults[[]user.Profile]().WithContext(ctx).WithMaxGoroutines(profileLookupParallel)
	for start := 0; start < len(userIDs); start += profileLookupChunk {
		end := start + profileLookupChunk
		if end > len(userIDs) {
			end = len(userIDs)
		}
		chunk := userIDs[start:end]
		p.Go(func(ctx context.Context) ([]user.Profile, error) {
			return s.profileRepo.ListProfilesByIDs(ctx, chunk)
		})
	}
	chunks, err := p.Wait()
	if err != nil {
		return nil, fmt.Errorf("list profiles by ids: %w", err)
	}

	profileByUserID := make(map[string]user.Profile)
	for _, chunk := range chunks {
		for _, profile := range chunk {
			profileByUserID[profile.UserID] = profile
		}
	}

	// members without a profile row still appear, names left blank.
	items := make([]team.MemberProfile, 0, len(ordered))
	for _, m := range ordered {
		item := team.MemberProfile{
			UserID: m.UserID,
			Role:   m.Role,
		}
		if profile, ok := profileByUserID[m.UserID]; ok {
			item.FirstName = profile.FirstName
			item.LastName = profile.LastName
			item.AvatarURL = profile.AvatarURL
		}
		items = append(items, item)
	}

	return items, nil
}
