package model

import "time"

// ExerciseRecord is one day of body metrics and exercise activity for
// a user. At most one record exists per (user, record date); writes
// upsert on that natural key. Every measured field is optional, so a
// record can hold any subset of the day's data.
//
// Fields:
//
//	ID                – primary key identifier.
//	UserID            – owner of the record.
//	RecordDate        – calendar date the record belongs to.
//	Weight            – body weight in kg.
//	BodyFatPercentage – body fat in percent.
//	MuscleMass        – muscle mass in kg.
//	MusclePercentage  – muscle share of body weight in percent.
//	ExerciseType      – free-text activity (running, gym, tennis, ...).
//	ExerciseDuration  – minutes of exercise.
//	ImageURL          – uploaded progress photo, if any.
//	CreatedAt         – creation timestamp.
//	UpdatedAt         – last update timestamp.
type ExerciseRecord struct {
	ID                uint64    // exercise_records.id
	UserID            uint64    // exercise_records.user_id
	RecordDate        time.Time // exercise_records.record_date
	Weight            *float64  // exercise_records.weight (nullable)
	BodyFatPercentage *float64  // exercise_records.body_fat_percentage (nullable)
	MuscleMass        *float64  // exercise_records.muscle_mass (nullable)
	MusclePercentage  *float64  // exercise_records.muscle_percentage (nullable)
	ExerciseType      *string   // exercise_records.exercise_type (nullable)
	ExerciseDuration  *int      // exercise_records.exercise_duration minutes (nullable)
	ImageURL          *string   // exercise_records.image_url (nullable)
	CreatedAt         time.Time // exercise_records.created_at
	UpdatedAt         time.Time // exercise_records.updated_at
}
