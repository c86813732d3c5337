package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fittrack/fittrack/internal/model"
)

// ErrRoutineNotFound is returned when a user has no routine of the
// requested type.
var ErrRoutineNotFound = errors.New("routine not found")

// RoutineRepo persists per-user morning/evening checklists. There is a
// unique index on (user_id, routine_type); saves are atomic upserts on
// that key.
type RoutineRepo struct{ db *sql.DB }

func NewRoutineRepo(db *sql.DB) *RoutineRepo { return &RoutineRepo{db: db} }

const routineColumns = "id, user_id, routine_type, routine_items, created_at, updated_at"

func scanRoutine(row interface{ Scan(...any) error }) (*model.Routine, error) {
	var rt model.Routine
	var raw sql.NullString
	err := row.Scan(&rt.ID, &rt.UserID, &rt.RoutineType, &raw, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rt.Items = decodeItems(raw.String)
	return &rt, nil
}

// Upsert replaces the checklist for (user, routine type).
func (r *RoutineRepo) Upsert(ctx context.Context, rt *model.Routine) (*model.Routine, error) {
	raw, err := encodeItems(rt.Items)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO routines (user_id, routine_type, routine_items) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE routine_items=VALUES(routine_items), updated_at=CURRENT_TIMESTAMP`,
		rt.UserID, rt.RoutineType, raw)
	if err != nil {
		return nil, err
	}
	return r.GetByUserAndType(ctx, rt.UserID, rt.RoutineType)
}

// GetByUserAndType fetches one routine slot of a user.
func (r *RoutineRepo) GetByUserAndType(ctx context.Context, userID uint64, routineType string) (*model.Routine, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+routineColumns+" FROM routines WHERE user_id=? AND routine_type=? LIMIT 1",
		userID, routineType)
	rt, err := scanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoutineNotFound
	}
	return rt, err
}

// ListByUser returns all routines of a user (at most one per type).
func (r *RoutineRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Routine, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+routineColumns+" FROM routines WHERE user_id=? ORDER BY routine_type", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Routine
	for rows.Next() {
		rt, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
