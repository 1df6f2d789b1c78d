package postgres

import (
	"database/sql"
	"time"

	"github.com/amar93190/Team-up/internal/domain/team"
)

const teamInviteCodeConstraint = "teams_invite_code_key"

type teamTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	EventID     string    `db:"event_public_id"`
	OwnerUserID string    `db:"owner_user_id"`
	Name        string    `db:"name"`
	Size        int       `db:"size"`
	InviteCode  string    `db:"invite_code"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID    string `db:"public_id"`
	EventID     string `db:"event_public_id"`
	OwnerUserID string `db:"owner_user_id"`
	Name        string `db:"name"`
	Size        int    `db:"size"`
	InviteCode  string `db:"invite_code"`
}

type teamMemberTableModel struct {
	ID        int64     `db:"id"`
	TeamID    string    `db:"team_public_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	JoinedAt  time.Time `db:"joined_at"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamMemberInsertModel struct {
	TeamID   string    `db:"team_public_id"`
	UserID   string    `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

type memberProfileRowModel struct {
	UserID    string         `db:"user_id"`
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	AvatarURL sql.NullString `db:"avatar_url"`
	Role      string         `db:"role"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:          row.PublicID,
		EventID:     row.EventID,
		OwnerUserID: row.OwnerUserID,
		Name:        row.Name,
		Size:        row.Size,
		InviteCode:  row.InviteCode,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func membershipFromRow(row teamMemberTableModel) team.Membership {
	return team.Membership{
		TeamID:    row.TeamID,
		UserID:    row.UserID,
		Role:      team.Role(row.Role),
		JoinedAt:  row.JoinedAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func memberProfileFromRow(row memberProfileRowModel) team.MemberProfile {
	return team.MemberProfile{
		UserID:    row.UserID,
		FirstName: nullStringToString(row.FirstName),
		LastName:  nullStringToString(row.LastName),
		AvatarURL: nullStringToString(row.AvatarURL),
		Role:      team.Role(row.Role),
	}
}
