package postgres

import (
	"database/sql"
	"time"

	"github.com/amar93190/Team-up/internal/domain/event"
)

type eventTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Location    sql.NullString `db:"location"`
	StartsAt    time.Time      `db:"starts_at"`
	EndsAt      time.Time      `db:"ends_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type eventFavoriteInsertModel struct {
	EventID string `db:"event_public_id"`
	UserID  string `db:"user_id"`
	Status  string `db:"status"`
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:          row.PublicID,
		Name:        row.Name,
		Description: nullStringToString(row.Description),
		Location:    nullStringToString(row.Location),
		StartsAt:    row.StartsAt,
		EndsAt:      row.EndsAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
