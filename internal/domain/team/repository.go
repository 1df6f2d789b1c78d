package team

import "context"

type Repository interface {
	// CreateWithOwner persists the team and its owner membership together;
	// callers never observe a team without an owner row.
	CreateWithOwner(ctx context.Context, t Team, owner Membership) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (Team, bool, error)
	// Join admits the user while holding the team row lock; it returns
	// ErrTeamFull when the roster is already at capacity. Joining a team the
	// user already belongs to refreshes the membership and never consumes a
	// seat.
	Join(ctx context.Context, teamID, userID string) (Membership, error)
	UpsertMember(ctx context.Context, m Membership) error
	CountMembers(ctx context.Context, teamID string) (int, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)
	// ListTeamsByUser may fail with ErrPolicyDenied when the backing store
	// refuses the joined read; callers fall back to ListTeamsByIDs.
	ListTeamsByUser(ctx context.Context, userID string) ([]Team, error)
	ListTeamsByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	ListMembers(ctx context.Context, teamID string) ([]Membership, error)
	// ListMemberProfiles reads the privileged roster aggregate; it returns
	// ErrAggregateUnavailable when the aggregate cannot be used.
	ListMemberProfiles(ctx context.Context, teamID string) ([]MemberProfile, error)
}
