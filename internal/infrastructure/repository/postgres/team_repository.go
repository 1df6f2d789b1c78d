package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/amar93190/Team-up/internal/domain/team"
	qb "github.com/amar93190/Team-up/internal/platform/querybuilder"
)

// memberUpsertSuffix makes membership writes idempotent on the composite key;
// replaying a write keeps one row and the newest role.
const memberUpsertSuffix = `ON CONFLICT (team_public_id, user_id)
DO UPDATE SET
    role = EXCLUDED.role,
    updated_at = NOW()`

func buildMemberUpsert(m team.Membership) (string, []any, error) {
	return qb.InsertModel("team_members", teamMemberInsertModel{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}, memberUpsertSuffix)
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateWithOwner(ctx context.Context, t team.Team, owner team.Membership) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertModel := teamInsertModel{
		PublicID:    t.ID,
		EventID:     t.EventID,
		OwnerUserID: t.OwnerUserID,
		Name:        t.Name,
		Size:        t.Size,
		InviteCode:  t.InviteCode,
	}
	teamQuery, teamArgs, err := qb.InsertModel("teams", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, teamQuery, teamArgs...); err != nil {
		if isUniqueViolation(err, teamInviteCodeConstraint) {
			return fmt.Errorf("create team: %w", team.ErrDuplicateInviteCode)
		}
		return fmt.Errorf("create team: %w", err)
	}

	memberQuery, memberArgs, err := buildMemberUpsert(owner)
	if err != nil {
		return fmt.Errorf("build create owner membership query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
		return fmt.Errorf("create owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) GetByInviteCode(ctx context.Context, inviteCode string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("invite_code", inviteCode)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by invite code query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by invite code: %w", err)
	}

	return teamFromRow(row), true, nil
}

// Join runs the capacity check and the membership insert in one transaction
// while holding the team row lock, so two racing joins on the last seat
// serialize and exactly one wins.
func (r *TeamRepository) Join(ctx context.Context, teamID, userID string) (team.Membership, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return team.Membership{}, fmt.Errorf("begin tx join team: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var size int
	if err := tx.GetContext(ctx, &size, "SELECT size FROM teams WHERE public_id = $1 FOR UPDATE", teamID); err != nil {
		if isNotFound(err) {
			return team.Membership{}, fmt.Errorf("join team: team not found: %s", teamID)
		}
		return team.Membership{}, fmt.Errorf("lock team row: %w", err)
	}

	existingQuery, existingArgs, err := qb.Select("*").From("team_members").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return team.Membership{}, fmt.Errorf("build get membership query: %w", err)
	}
	var existing teamMemberTableModel
	getErr := tx.GetContext(ctx, &existing, existingQuery, existingArgs...)
	if getErr == nil {
		// already on the roster; refresh and keep the seat count untouched.
		if _, err := tx.ExecContext(ctx, "UPDATE team_members SET updated_at = NOW() WHERE team_public_id = $1 AND user_id = $2", teamID, userID); err != nil {
			return team.Membership{}, fmt.Errorf("refresh membership: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return team.Membership{}, fmt.Errorf("commit join team tx: %w", err)
		}
		return membershipFromRow(existing), nil
	}
	if !isNotFound(getErr) {
		return team.Membership{}, fmt.Errorf("get existing membership: %w", getErr)
	}

	var memberCount int
	if err := tx.GetContext(ctx, &memberCount, "SELECT COUNT(*) FROM team_members WHERE team_public_id = $1", teamID); err != nil {
		return team.Membership{}, fmt.Errorf("count members: %w", err)
	}
	if !team.HasCapacity(size, memberCount) {
		return team.Membership{}, fmt.Errorf("join team %s: %w", teamID, team.ErrTeamFull)
	}

	now := time.Now().UTC()
	insertModel := teamMemberInsertModel{
		TeamID:   teamID,
		UserID:   userID,
		Role:     string(team.RoleMember),
		JoinedAt: now,
	}
	insertQuery, insertArgs, err := qb.InsertModel("team_members", insertModel, "")
	if err != nil {
		return team.Membership{}, fmt.Errorf("build join membership query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return team.Membership{}, fmt.Errorf("insert membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return team.Membership{}, fmt.Errorf("commit join team tx: %w", err)
	}

	return team.Membership{
		TeamID:    teamID,
		UserID:    userID,
		Role:      team.RoleMember,
		JoinedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *TeamRepository) UpsertMember(ctx context.Context, m team.Membership) error {
	query, args, err := buildMemberUpsert(m)
	if err != nil {
		return fmt.Errorf("build upsert membership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert membership: %w", err)
	}

	return nil
}

func (r *TeamRepository) CountMembers(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("team_members").
		Where(qb.Eq("team_public_id", teamID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count members query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}

	return count, nil
}

func (r *TeamRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]team.Membership, error) {
	query, args, err := qb.Select("*").From("team_members").
		Where(qb.Eq("user_id", userID)).
		OrderBy("joined_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships by user query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}

	out := make([]team.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) ListTeamsByUser(ctx context.Context, userID string) ([]team.Team, error) {
	query, args, err := qb.Select("t.*").
		From("teams t JOIN team_members tm ON tm.team_public_id = t.public_id").
		Where(qb.Eq("tm.user_id", userID)).
		OrderBy("t.created_at DESC", "t.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by user query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isInsufficientPrivilege(err) {
			return nil, fmt.Errorf("list teams by user: %w", team.ErrPolicyDenied)
		}
		return nil, fmt.Errorf("list teams by user: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) ListTeamsByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(teamIDs))
	for _, id := range teamIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Select("*").From("teams").
		Where(qb.In("public_id", ids)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by ids query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by ids: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Membership, error) {
	query, args, err := qb.Select("*").From("team_members").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("joined_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]team.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

// ListMemberProfiles reads the roster through the team_member_profiles
// function, which runs with definer rights so member rows bypass per-user
// row policies. Databases without the function surface
// team.ErrAggregateUnavailable instead of an opaque failure.
func (r *TeamRepository) ListMemberProfiles(ctx context.Context, teamID string) ([]team.MemberProfile, error) {
	var rows []memberProfileRowModel
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM team_member_profiles($1)", teamID)
	if err != nil {
		if isUndefinedFunction(err) || isInsufficientPrivilege(err) {
			return nil, fmt.Errorf("list member profiles: %w", team.ErrAggregateUnavailable)
		}
		return nil, fmt.Errorf("list member profiles: %w", err)
	}

	out := make([]team.MemberProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberProfileFromRow(row))
	}
	return out, nil
}
