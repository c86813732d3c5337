package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fittrack/fittrack/internal/model"
	"github.com/fittrack/fittrack/internal/utils"
)

// ErrRecordNotFound is returned when no record exists for the lookup key.
var ErrRecordNotFound = errors.New("exercise record not found")

// ExerciseRecordRepo persists daily exercise records. There is a
// unique index on (user_id, record_date); all writes go through an
// atomic upsert on that key, so concurrent saves for the same day
// cannot create duplicate rows.
type ExerciseRecordRepo struct{ db *sql.DB }

func NewExerciseRecordRepo(db *sql.DB) *ExerciseRecordRepo { return &ExerciseRecordRepo{db: db} }

const recordColumns = `id, user_id, record_date, weight, body_fat_percentage, muscle_mass,
	muscle_percentage, exercise_type, exercise_duration, image_url, created_at, updated_at`

func scanRecord(row interface{ Scan(...any) error }) (*model.ExerciseRecord, error) {
	var rec model.ExerciseRecord
	var exType, imageURL sql.NullString
	var duration sql.NullInt64
	var weight, bodyFat, muscleMass, musclePct sql.NullFloat64
	err := row.Scan(&rec.ID, &rec.UserID, &rec.RecordDate, &weight, &bodyFat, &muscleMass,
		&musclePct, &exType, &duration, &imageURL, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.RecordDate = utils.DateOnly(rec.RecordDate)
	if weight.Valid {
		rec.Weight = &weight.Float64
	}
	if bodyFat.Valid {
		rec.BodyFatPercentage = &bodyFat.Float64
	}
	if muscleMass.Valid {
		rec.MuscleMass = &muscleMass.Float64
	}
	if musclePct.Valid {
		rec.MusclePercentage = &musclePct.Float64
	}
	if exType.Valid {
		rec.ExerciseType = &exType.String
	}
	if duration.Valid {
		d := int(duration.Int64)
		rec.ExerciseDuration = &d
	}
	if imageURL.Valid {
		rec.ImageURL = &imageURL.String
	}
	return &rec, nil
}

// Upsert writes the record for (user, date), replacing every measured
// field including explicit nulls so a cleared field stays cleared. The
// fully populated row is re-read afterwards so callers get server
// timestamps and the row id.
func (r *ExerciseRecordRepo) Upsert(ctx context.Context, rec *model.ExerciseRecord) (*model.ExerciseRecord, error) {
	const q = `INSERT INTO exercise_records
		(user_id, record_date, weight, body_fat_percentage, muscle_mass, muscle_percentage,
		 exercise_type, exercise_duration, image_url)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
		 weight=VALUES(weight), body_fat_percentage=VALUES(body_fat_percentage),
		 muscle_mass=VALUES(muscle_mass), muscle_percentage=VALUES(muscle_percentage),
		 exercise_type=VALUES(exercise_type), exercise_duration=VALUES(exercise_duration),
		 image_url=VALUES(image_url), updated_at=CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, q,
		rec.UserID, rec.RecordDate,
		nullFloat(rec.Weight), nullFloat(rec.BodyFatPercentage), nullFloat(rec.MuscleMass),
		nullFloat(rec.MusclePercentage), nullStrPtr(rec.ExerciseType), nullInt(rec.ExerciseDuration),
		nullStrPtr(rec.ImageURL))
	if err != nil {
		return nil, err
	}
	return r.GetByUserAndDate(ctx, rec.UserID, rec.RecordDate)
}

// GetByUserAndDate fetches the single record for one day.
func (r *ExerciseRecordRepo) GetByUserAndDate(ctx context.Context, userID uint64, date time.Time) (*model.ExerciseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM exercise_records WHERE user_id=? AND record_date=? LIMIT 1",
		userID, date)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	return rec, err
}

// ListByUser returns all records of a user, newest date first.
func (r *ExerciseRecordRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.ExerciseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM exercise_records WHERE user_id=? ORDER BY record_date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByUserAndRange returns records within [start, end] inclusive,
// ordered by date ascending. This is the feed for progress aggregation.
func (r *ExerciseRecordRepo) ListByUserAndRange(ctx context.Context, userID uint64, start, end time.Time) ([]*model.ExerciseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM exercise_records WHERE user_id=? AND record_date BETWEEN ? AND ? ORDER BY record_date",
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows *sql.Rows) ([]*model.ExerciseRecord, error) {
	var out []*model.ExerciseRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStrPtr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
