package model

import "time"

// Challenge is a user-defined goal period with optional target
// metrics. Whether a challenge is "active" is derived from its date
// range, never stored.
//
// Fields:
//
//	ID                     – primary key identifier.
//	UserID                 – owning user.
//	Name                   – challenge title.
//	StartDate              – first day of the period (inclusive).
//	EndDate                – last day of the period (inclusive).
//	TargetWeight           – goal body weight in kg.
//	TargetBodyFatPercent   – goal body fat in percent.
//	TargetMuscleMass       – goal muscle mass in kg.
//	TargetExerciseDuration – goal total exercise minutes over the period.
//	CreatedAt              – creation timestamp.
//	UpdatedAt              – last update timestamp.
type Challenge struct {
	ID                     uint64    // challenges.id
	UserID                 uint64    // challenges.user_id
	Name                   string    // challenges.name
	StartDate              time.Time // challenges.start_date
	EndDate                time.Time // challenges.end_date
	TargetWeight           *float64  // challenges.target_weight (nullable)
	TargetBodyFatPercent   *float64  // challenges.target_body_fat_percentage (nullable)
	TargetMuscleMass       *float64  // challenges.target_muscle_mass (nullable)
	TargetExerciseDuration *int      // challenges.target_exercise_duration minutes (nullable)
	CreatedAt              time.Time // challenges.created_at
	UpdatedAt              time.Time // challenges.updated_at
}

// ActiveOn reports whether the challenge period covers the given day.
// Both boundary dates are inclusive: a challenge is still active on its
// end date and no longer active the day after.
func (c Challenge) ActiveOn(day time.Time) bool {
	return !day.Before(c.StartDate) && !day.After(c.EndDate)
}
