package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/amar93190/Team-up/internal/domain/team"
	"github.com/amar93190/Team-up/internal/domain/user"
)

// TeamRepository is the in-process store used by tests and local runs. The
// Deny* toggles simulate stores that reject joined reads or lack the roster
// aggregate, so fallback paths stay exercised without a database.
type TeamRepository struct {
	mu       sync.RWMutex
	teams    map[string]team.Team
	byCode   map[string]string
	members  map[string]map[string]team.Membership
	profiles map[string]user.Profile

	DenyJoinedTeamReads    bool
	DenyMemberProfileReads bool
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		teams:    make(map[string]team.Team),
		byCode:   make(map[string]string),
		members:  make(map[string]map[string]team.Membership),
		profiles: make(map[string]user.Profile),
	}
}

// SetProfile registers a profile row for the roster aggregate.
func (r *TeamRepository) SetProfile(p user.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = p
}

func (r *TeamRepository) CreateWithOwner(_ context.Context, t team.Team, owner team.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[t.ID]; exists {
		return fmt.Errorf("team already exists: %s", t.ID)
	}
	if _, taken := r.byCode[t.InviteCode]; taken {
		return fmt.Errorf("%w: %s", team.ErrDuplicateInviteCode, t.InviteCode)
	}

	r.teams[t.ID] = t
	r.byCode[t.InviteCode] = t.ID
	r.members[t.ID] = map[string]team.Membership{owner.UserID: owner}
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetByInviteCode(_ context.Context, inviteCode string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamID, ok := r.byCode[inviteCode]
	if !ok {
		return team.Team{}, false, nil
	}
	t, ok := r.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) Join(_ context.Context, teamID, userID string) (team.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[teamID]
	if !ok {
		return team.Membership{}, fmt.Errorf("team not found: %s", teamID)
	}

	roster := r.members[teamID]
	if roster == nil {
		roster = make(map[string]team.Membership)
		r.members[teamID] = roster
	}

	now := time.Now().UTC()
	if existing, ok := roster[userID]; ok {
		existing.UpdatedAt = now
		roster[userID] = existing
		return existing, nil
	}

	if !team.HasCapacity(t.Size, len(roster)) {
		return team.Membership{}, fmt.Errorf("join team %s: %w", teamID, team.ErrTeamFull)
	}

	m := team.Membership{
		TeamID:    teamID,
		UserID:    userID,
		Role:      team.RoleMember,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	roster[userID] = m
	return m, nil
}

func (r *TeamRepository) UpsertMember(_ context.Context, m team.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster := r.members[m.TeamID]
	if roster == nil {
		roster = make(map[string]team.Membership)
		r.members[m.TeamID] = roster
	}
	roster[m.UserID] = m
	return nil
}

func (r *TeamRepository) CountMembers(_ context.Context, teamID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members[teamID]), nil
}

func (r *TeamRepository) ListMembershipsByUser(_ context.Context, userID string) ([]team.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []team.Membership
	for _, roster := range r.members {
		if m, ok := roster[userID]; ok {
			items = append(items, m)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].JoinedAt.Before(items[j].JoinedAt) })
	return items, nil
}

func (r *TeamRepository) ListTeamsByUser(_ context.Context, userID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.DenyJoinedTeamReads {
		return nil, fmt.Errorf("list teams for user %s: %w", userID, team.ErrPolicyDenied)
	}

	var items []team.Team
	for teamID, roster := range r.members {
		if _, ok := roster[userID]; !ok {
			continue
		}
		if t, ok := r.teams[teamID]; ok {
			items = append(items, t)
		}
	}
	return items, nil
}

func (r *TeamRepository) ListTeamsByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if t, ok := r.teams[id]; ok {
			items = append(items, t)
		}
	}
	return items, nil
}

func (r *TeamRepository) ListMembers(_ context.Context, teamID string) ([]team.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster := r.members[teamID]
	items := make([]team.Membership, 0, len(roster))
	for _, m := range roster {
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].JoinedAt.Before(items[j].JoinedAt) })
	return items, nil
}

func (r *TeamRepository) ListMemberProfiles(_ context.Context, teamID string) ([]team.MemberProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.DenyMemberProfileReads {
		return nil, fmt.Errorf("list member profiles for team %s: %w", teamID, team.ErrAggregateUnavailable)
	}

	roster := r.members[teamID]
	memberships := make([]team.Membership, 0, len(roster))
	for _, m := range roster {
		memberships = append(memberships, m)
	}
	sort.Slice(memberships, func(i, j int) bool {
		if (memberships[i].Role == team.RoleOwner) != (memberships[j].Role == team.RoleOwner) {
			return memberships[i].Role == team.RoleOwner
		}
		return memberships[i].JoinedAt.Before(memberships[j].JoinedAt)
	})

	items := make([]team.MemberProfile, 0, len(memberships))
	for _, m := range memberships {
		item := team.MemberProfile{
			UserID: m.UserID,
			Role:   m.Role,
		}
		if p, ok := r.profiles[m.UserID]; ok {
			item.FirstName = p.FirstName
			item.LastName = p.LastName
			item.AvatarURL = p.AvatarURL
		}
		items = append(items, item)
	}
	return items, nil
}
