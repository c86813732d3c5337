package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/utils"
)

// ErrChallengeNotFound is returned when a challenge cannot be found.
var ErrChallengeNotFound = errors.New("challenge not found")

// ChallengeRepo encapsulates all database queries related to challenges.
type ChallengeRepo struct{ db *sql.DB }

func NewChallengeRepo(db *sql.DB) *ChallengeRepo { return &ChallengeRepo{db: db} }

const challengeColumns = `id, user_id, name, start_date, end_date, target_weight,
	target_body_fat_percentage, target_muscle_mass, target_exercise_duration, created_at, updated_at`

func scanChallenge(row interface{ Scan(...any) error }) (*model.Challenge, error) {
	var c model.Challenge
	var weight, bodyFat, muscle sql.NullFloat64
	var duration sql.NullInt64
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.StartDate, &c.EndDate,
		&weight, &bodyFat, &muscle, &duration, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.StartDate = utils.DateOnly(c.StartDate)
	c.EndDate = utils.DateOnly(c.EndDate)
	if weight.Valid {
		c.TargetWeight = &weight.Float64
	}
	if bodyFat.Valid {
		c.TargetBodyFatPercent = &bodyFat.Float64
	}
	if muscle.Valid {
		c.TargetMuscleMass = &muscle.Float64
	}
	if duration.Valid {
		d := int(duration.Int64)
		c.TargetExerciseDuration = &d
	}
	return &c, nil
}

// Create inserts a challenge and re-reads the stored row so the caller
// receives the generated id and server timestamps.
func (r *ChallengeRepo) Create(ctx context.Context, c *model.Challenge) (*model.Challenge, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO challenges
		 (user_id, name, start_date, end_date, target_weight, target_body_fat_percentage,
		  target_muscle_mass, target_exercise_duration)
		 VALUES (?,?,?,?,?,?,?,?)`,
		c.UserID, c.Name, c.StartDate, c.EndDate,
		nullFloat(c.TargetWeight), nullFloat(c.TargetBodyFatPercent),
		nullFloat(c.TargetMuscleMass), nullInt(c.TargetExerciseDuration))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a challenge regardless of owner. Ownership checks
// belong to the handler layer, which also needs the row for shared views.
func (r *ChallengeRepo) GetByID(ctx context.Context, id uint64) (*model.Challenge, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+challengeColumns+" FROM challenges WHERE id=? LIMIT 1", id)
	c, err := scanChallenge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChallengeNotFound
	}
	return c, err
}

// ListByUser returns the user's challenges, newest start date first.
// A non-zero asOf applies the active/completed filter relative to that
// day: "active" keeps challenges whose end date has not passed,
// "completed" keeps the rest.
func (r *ChallengeRepo) ListByUser(ctx context.Context, userID uint64, filter string, asOf time.Time) ([]*model.Challenge, error) {
	q := "SELECT " + challengeColumns + " FROM challenges WHERE user_id=?"
	args := []any{userID}
	switch filter {
	case "active":
		q += " AND end_date >= ?"
		args = append(args, asOf)
	case "completed":
		q += " AND end_date < ?"
		args = append(args, asOf)
	}
	q += " ORDER BY start_date DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateTargets replaces the four target metrics of a challenge owned
// by the given user. Nil values clear the stored target; name and
// dates are never touched here. Returns ErrChallengeNotFound when the
// row does not exist or belongs to someone else.
func (r *ChallengeRepo) UpdateTargets(ctx context.Context, id, userID uint64, c *model.Challenge) (*model.Challenge, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE challenges
		 SET target_weight=?, target_body_fat_percentage=?, target_muscle_mass=?,
		     target_exercise_duration=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND user_id=?`,
		nullFloat(c.TargetWeight), nullFloat(c.TargetBodyFatPercent),
		nullFloat(c.TargetMuscleMass), nullInt(c.TargetExerciseDuration),
		id, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "absent" from "no change": re-check existence for this owner.
		if _, err := r.getOwned(ctx, id, userID); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *ChallengeRepo) getOwned(ctx context.Context, id, userID uint64) (*model.Challenge, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+challengeColumns+" FROM challenges WHERE id=? AND user_id=? LIMIT 1", id, userID)
	c, err := scanChallenge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChallengeNotFound
	}
	return c, err
}
