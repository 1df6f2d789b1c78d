package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/amar93190/Team-up/internal/domain/event"
	qb "github.com/amar93190/Team-up/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) GetByIDs(ctx context.Context, eventIDs []string) ([]event.Event, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(eventIDs))
	for _, id := range eventIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Select("*").From("events").
		Where(qb.In("public_id", ids)).
		OrderBy("starts_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get events by ids query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get events by ids: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

// approvedEventsQuery joins registrations to events for one user. Stores that
// predate the status column treat every registration row as approved, so the
// fallback shape drops the status predicate.
func approvedEventsQuery(userID string, withStatus bool) (string, []any, error) {
	conds := []qb.Condition{qb.Eq("er.user_id", userID)}
	if withStatus {
		conds = append(conds, qb.Eq("er.status", string(event.RegistrationApproved)))
	}
	return qb.Select("e.*").
		From("events e JOIN event_registrations er ON er.event_public_id = e.public_id").
		Where(conds...).
		OrderBy("e.starts_at ASC", "e.id ASC").
		ToSQL()
}

func (r *EventRepository) ListApprovedByUser(ctx context.Context, userID string) ([]event.Event, error) {
	rows, err := r.selectApproved(ctx, userID, true)
	if isUndefinedColumn(err) {
		rows, err = r.selectApproved(ctx, userID, false)
	}
	if err != nil {
		return nil, fmt.Errorf("list approved events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) selectApproved(ctx context.Context, userID string, withStatus bool) ([]eventTableModel, error) {
	query, args, err := approvedEventsQuery(userID, withStatus)
	if err != nil {
		return nil, fmt.Errorf("build list approved events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EventRepository) UpsertFavorite(ctx context.Context, f event.Favorite) error {
	insertModel := eventFavoriteInsertModel{
		EventID: f.EventID,
		UserID:  f.UserID,
		Status:  string(f.Status),
	}
	query, args, err := qb.InsertModel("event_favorites", insertModel, `ON CONFLICT (event_public_id, user_id)
DO UPDATE SET
    status = EXCLUDED.status,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert favorite query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUndefinedColumn(err) {
			return fmt.Errorf("upsert favorite: %w", event.ErrStatusColumnUnavailable)
		}
		return fmt.Errorf("upsert favorite: %w", err)
	}

	return nil
}

func (r *EventRepository) SetFavoritePresence(ctx context.Context, eventID, userID string, favorite bool) error {
	if favorite {
		query, args, err := qb.InsertInto("event_favorites").
			Columns("event_public_id", "user_id").
			Values(eventID, userID).
			Suffix("ON CONFLICT (event_public_id, user_id) DO NOTHING").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build insert favorite presence query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert favorite presence: %w", err)
		}
		return nil
	}

	query, args, err := qb.Delete("event_favorites").
		Where(
			qb.Eq("event_public_id", eventID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete favorite presence query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete favorite presence: %w", err)
	}

	return nil
}
