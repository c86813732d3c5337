package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/utils"
)

// RoutineCheckRepo persists which routine items a user completed per
// day. Unique index on (user_id, check_date, routine_type); writes are
// atomic upserts.
type RoutineCheckRepo struct{ db *sql.DB }

func NewRoutineCheckRepo(db *sql.DB) *RoutineCheckRepo { return &RoutineCheckRepo{db: db} }

const checkColumns = "id, user_id, check_date, routine_type, checked_items, created_at, updated_at"

func scanCheck(row interface{ Scan(...any) error }) (*model.RoutineCheck, error) {
	var c model.RoutineCheck
	var raw sql.NullString
	err := row.Scan(&c.ID, &c.UserID, &c.CheckDate, &c.RoutineType, &raw, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.CheckDate = utils.DateOnly(c.CheckDate)
	c.CheckedItems = decodeItems(raw.String)
	return &c, nil
}

// Upsert replaces the checked item set for (user, date, routine type).
func (r *RoutineCheckRepo) Upsert(ctx context.Context, c *model.RoutineCheck) (*model.RoutineCheck, error) {
	raw, err := encodeItems(c.CheckedItems)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO routine_checks (user_id, check_date, routine_type, checked_items) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE checked_items=VALUES(checked_items), updated_at=CURRENT_TIMESTAMP`,
		c.UserID, c.CheckDate, c.RoutineType, raw)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		"SELECT "+checkColumns+" FROM routine_checks WHERE user_id=? AND check_date=? AND routine_type=? LIMIT 1",
		c.UserID, c.CheckDate, c.RoutineType)
	return scanCheck(row)
}

// ListByUserAndDate returns the checks of one day (zero, one or two rows).
func (r *RoutineCheckRepo) ListByUserAndDate(ctx context.Context, userID uint64, date time.Time) ([]*model.RoutineCheck, error) {
	return r.list(ctx,
		"SELECT "+checkColumns+" FROM routine_checks WHERE user_id=? AND check_date=? ORDER BY routine_type",
		userID, date)
}

// ListByUserAndRange returns checks within [start, end] inclusive,
// used when assembling the shared challenge view.
func (r *RoutineCheckRepo) ListByUserAndRange(ctx context.Context, userID uint64, start, end time.Time) ([]*model.RoutineCheck, error) {
	return r.list(ctx,
		"SELECT "+checkColumns+" FROM routine_checks WHERE user_id=? AND check_date BETWEEN ? AND ? ORDER BY check_date",
		userID, start, end)
}

func (r *RoutineCheckRepo) list(ctx context.Context, q string, args ...any) ([]*model.RoutineCheck, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RoutineCheck
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
