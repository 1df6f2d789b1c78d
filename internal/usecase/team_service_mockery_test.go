package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/amar93190/Team-up/internal/domain/team"
	"github.com/amar93190/Team-up/internal/infrastructure/repository/memory"
	teammock "github.com/amar93190/Team-up/internal/mocks/domain/team"
)

func TestTeamService_JoinByCode_FullTeamUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(
		teamRepo,
		memory.SeedEventRepository(),
		memory.NewProfileRepository(),
		&sequenceCodeGenerator{codes: []string{"AB12CD"}},
		staticIDGenerator{id: "team-new"},
		nil,
		nil,
	)

	found := team.Team{ID: "team-1", EventID: "evt-1", Size: 2, InviteCode: "AB12CD"}
	teamRepo.
		On("GetByInviteCode", mock.Anything, "AB12CD").
		Return(found, true, nil).
		Once()
	teamRepo.
		On("Join", mock.Anything, "team-1", "user-late").
		Return(team.Membership{}, fmt.Errorf("join team team-1: %w", team.ErrTeamFull)).
		Once()

	_, err := service.JoinByCode(t.Context(), JoinTeamInput{UserID: "user-late", InviteCode: "ab12cd"})
	if !errors.Is(err, team.ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
}

func TestTeamService_ListMyTeams_PolicyFallbackUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(
		teamRepo,
		memory.SeedEventRepository(),
		memory.NewProfileRepository(),
		&sequenceCodeGenerator{codes: []string{"AB12CD"}},
		staticIDGenerator{id: "team-new"},
		nil,
		nil,
	)

	memberships := []team.Membership{
		{TeamID: "team-1", UserID: "user-1", Role: team.RoleOwner},
		{TeamID: "team-2", UserID: "user-1", Role: team.RoleMember},
	}
	teams := []team.Team{
		{ID: "team-1", EventID: "evt-1"},
		{ID: "team-2", EventID: "evt-2"},
	}

	teamRepo.
		On("ListTeamsByUser", mock.Anything, "user-1").
		Return(nil, fmt.Errorf("joined read: %w", team.ErrPolicyDenied)).
		Once()
	teamRepo.
		On("ListMembershipsByUser", mock.Anything, "user-1").
		Return(memberships, nil).
		Once()
	teamRepo.
		On("ListTeamsByIDs", mock.Anything, []string{"team-1", "team-2"}).
		Return(teams, nil).
		Once()

	got, err := service.ListMyTeams(t.Context(), "user-1", "")
	if err != nil {
		t.Fatalf("list my teams: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(got))
	}
}

// Row policies can null the joined relation instead of erroring, so a member
// sees an empty joined read. The service must notice the membership rows and
// stitch the teams from id lookups.
func TestTeamService_ListMyTeams_EmptyJoinedReadFallbackUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(
		teamRepo,
		memory.SeedEventRepository(),
		memory.NewProfileRepository(),
		&sequenceCodeGenerator{codes: []string{"AB12CD"}},
		staticIDGenerator{id: "team-new"},
		nil,
		nil,
	)

	teamRepo.
		On("ListTeamsByUser", mock.Anything, "user-1").
		Return([]team.Team{}, nil).
		Once()
	teamRepo.
		On("ListMembershipsByUser", mock.Anything, "user-1").
		Return([]team.Membership{{TeamID: "team-1", UserID: "user-1", Role: team.RoleMember}}, nil).
		Once()
	teamRepo.
		On("ListTeamsByIDs", mock.Anything, []string{"team-1"}).
		Return([]team.Team{{ID: "team-1", EventID: "evt-1"}}, nil).
		Once()

	got, err := service.ListMyTeams(t.Context(), "user-1", "")
	if err != nil {
		t.Fatalf("list my teams: %v", err)
	}
	if len(got) != 1 || got[0].ID != "team-1" {
		t.Fatalf("expected stitched team, got %+v", got)
	}
}
