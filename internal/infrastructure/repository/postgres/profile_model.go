package postgres

import (
	"database/sql"
	"time"

	"github.com/amar93190/Team-up/internal/domain/user"
)

type profileTableModel struct {
	ID        int64          `db:"id"`
	UserID    string         `db:"user_id"`
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	AvatarURL sql.NullString `db:"avatar_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func profileFromRow(row profileTableModel) user.Profile {
	return user.Profile{
		UserID:    row.UserID,
		FirstName: nullStringToString(row.FirstName),
		LastName:  nullStringToString(row.LastName),
		AvatarURL: nullStringToString(row.AvatarURL),
		UpdatedAt: row.UpdatedAt,
	}
}
