package memory

import (
	"testing"
	"time"

	"github.com/amar93190/Team-up/internal/domain/team"
)

func TestTeamRepository_UpsertMember_Idempotent(t *testing.T) {
	repo := SeedTeamRepository()
	now := time.Now().UTC()

	m := team.Membership{
		TeamID:    TeamIDRoadrunners,
		UserID:    UserIDSeedMember,
		Role:      team.RoleMember,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.UpsertMember(t.Context(), m); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertMember(t.Context(), m); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	count, err := repo.CountMembers(t.Context(), TeamIDRoadrunners)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	// seeded owner plus the upserted member, regardless of the replay.
	if count != 2 {
		t.Fatalf("expected 2 members, got %d", count)
	}
}

func TestTeamRepository_UpsertMember_LastRoleWins(t *testing.T) {
	repo := SeedTeamRepository()
	now := time.Now().UTC()

	// bootstrap the seeded owner again, this time demoted to a plain member.
	if err := repo.UpsertMember(t.Context(), team.Membership{
		TeamID:   TeamIDRoadrunners,
		UserID:   UserIDSeedOwner,
		Role:     team.RoleMember,
		JoinedAt: now,
	}); err != nil {
		t.Fatalf("upsert member: %v", err)
	}

	count, err := repo.CountMembers(t.Context(), TeamIDRoadrunners)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one membership row, got %d", count)
	}

	members, err := repo.ListMembers(t.Context(), TeamIDRoadrunners)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if members[0].Role != team.RoleMember {
		t.Fatalf("expected the latest role to win, got %s", members[0].Role)
	}
}
