// Package progress computes challenge progress from daily exercise
// records. It is pure computation over already-fetched data: handlers
// load the challenge, the date-ranged records and (for shared views)
// the owner's routines, then call Trend or Compare.
//
// Two views exist on purpose and must not be unified:
//
//   - Trend is the owner's view. Only recorded days count, and the
//     summary is a snapshot of the most recent recorded day for the
//     body metrics while exercise duration is summed over the whole
//     period against a single target.
//   - Compare is the shared view. Every calendar day of the period
//     appears, actual values are reduced to signed target-relative
//     diffs, and the summary counts successful days across the period.
package progress

import "time"

// Targets is the optional goal set of a challenge. A nil field means
// no goal for that metric; days can never succeed on it and it is
// excluded from recorded-day counts.
type Targets struct {
	Weight           *float64 // kg, lower is better
	BodyFatPercent   *float64 // percent, lower is better
	MuscleMass       *float64 // kg, higher is better
	ExerciseDuration *int     // minutes over the whole period, higher is better
}

// DayRecord carries the measured values of one calendar day. All
// fields are optional; a day with no record at all simply has no entry
// in the records map passed to Trend/Compare.
type DayRecord struct {
	Weight            *float64
	BodyFatPercentage *float64
	MuscleMass        *float64
	MusclePercentage  *float64
	ExerciseDuration  *int
}

// empty reports whether none of the tracked fields carry data. Such
// records exist when a user saved only an exercise type or photo; the
// owner trend skips them entirely.
func (r DayRecord) empty() bool {
	return r.Weight == nil && r.BodyFatPercentage == nil &&
		r.MuscleMass == nil && r.ExerciseDuration == nil
}

// checkSuccess applies the per-metric success rule: lower-is-better
// metrics succeed when actual <= target, higher-is-better when
// actual >= target. A missing actual or target is never a success.
// Zero or negative targets are compared like any other number.
func checkSuccess(actual, target *float64, higherIsBetter bool) bool {
	if actual == nil || target == nil {
		return false
	}
	if higherIsBetter {
		return *actual >= *target
	}
	return *actual <= *target
}

func intToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}

// eachDay calls fn for every calendar date from start through end
// inclusive. Dates must be normalized to UTC midnight.
func eachDay(start, end time.Time, fn func(day time.Time)) {
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}
