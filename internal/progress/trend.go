package progress

import (
	"sort"
	"time"
)

// DayTrend is one recorded day in the owner's view, with absolute
// values and per-metric success flags.
type DayTrend struct {
	Date              time.Time
	Weight            *float64
	BodyFatPercentage *float64
	MuscleMass        *float64
	MusclePercentage  *float64
	ExerciseDuration  *int

	WeightSuccess           bool
	BodyFatSuccess          bool
	MuscleMassSuccess       bool
	MusclePercentageSuccess bool
	ExerciseDurationSuccess bool
}

// TrendSummary aggregates the owner view. Weight, body fat and muscle
// mass are judged on the latest recorded day only: the rate is
// actual/target*100 for that day and the success count is 0 or 1.
// Exercise duration is the odd one out: minutes are summed over all
// recorded days and compared once against the single period target.
type TrendSummary struct {
	TotalDays int

	WeightSuccessCount           int
	BodyFatSuccessCount          int
	MuscleMassSuccessCount       int
	ExerciseDurationSuccessCount int

	WeightRecordedDays           int
	BodyFatRecordedDays          int
	MuscleMassRecordedDays       int
	ExerciseDurationRecordedDays int

	WeightSuccessRate           float64
	BodyFatSuccessRate          float64
	MuscleMassSuccessRate       float64
	ExerciseDurationSuccessRate float64
}

// Trend builds the owner's daily progress for a challenge. Only days
// that have a record, are not after today and fall within
// [start, end] are included; records with no tracked data are skipped.
// The returned slice is ordered by date ascending.
func Trend(t Targets, records map[time.Time]DayRecord, start, end, today time.Time) ([]DayTrend, TrendSummary) {
	days := make([]DayTrend, 0, len(records))
	for date, rec := range records {
		if date.After(today) {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		if rec.empty() {
			continue
		}
		days = append(days, DayTrend{
			Date:              date,
			Weight:            rec.Weight,
			BodyFatPercentage: rec.BodyFatPercentage,
			MuscleMass:        rec.MuscleMass,
			MusclePercentage:  rec.MusclePercentage,
			ExerciseDuration:  rec.ExerciseDuration,

			WeightSuccess:           checkSuccess(rec.Weight, t.Weight, false),
			BodyFatSuccess:          checkSuccess(rec.BodyFatPercentage, t.BodyFatPercent, false),
			MuscleMassSuccess:       checkSuccess(rec.MuscleMass, t.MuscleMass, true),
			ExerciseDurationSuccess: checkSuccess(intToFloat(rec.ExerciseDuration), intToFloat(t.ExerciseDuration), true),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	sum := TrendSummary{TotalDays: len(days)}

	totalDuration := 0
	for _, d := range days {
		if d.ExerciseDuration != nil {
			totalDuration += *d.ExerciseDuration
		}
	}

	if len(days) > 0 {
		last := days[len(days)-1]
		if last.Weight != nil && t.Weight != nil {
			sum.WeightSuccessRate = *last.Weight / *t.Weight * 100
			if *last.Weight <= *t.Weight {
				sum.WeightSuccessCount = 1
			}
		}
		if last.BodyFatPercentage != nil && t.BodyFatPercent != nil {
			sum.BodyFatSuccessRate = *last.BodyFatPercentage / *t.BodyFatPercent * 100
			if *last.BodyFatPercentage <= *t.BodyFatPercent {
				sum.BodyFatSuccessCount = 1
			}
		}
		if last.MuscleMass != nil && t.MuscleMass != nil {
			sum.MuscleMassSuccessRate = *last.MuscleMass / *t.MuscleMass * 100
			if *last.MuscleMass >= *t.MuscleMass {
				sum.MuscleMassSuccessCount = 1
			}
		}
		if last.Weight != nil {
			sum.WeightRecordedDays = 1
		}
		if last.BodyFatPercentage != nil {
			sum.BodyFatRecordedDays = 1
		}
		if last.MuscleMass != nil {
			sum.MuscleMassRecordedDays = 1
		}
	}

	// Duration rate must never divide by a zero or negative target.
	if t.ExerciseDuration != nil && *t.ExerciseDuration > 0 {
		sum.ExerciseDurationSuccessRate = float64(totalDuration) / float64(*t.ExerciseDuration) * 100
		if totalDuration >= *t.ExerciseDuration {
			sum.ExerciseDurationSuccessCount = 1
		}
	}
	if totalDuration > 0 {
		sum.ExerciseDurationRecordedDays = 1
	}

	return days, sum
}
