package progress

import "time"

// RoutineCoverage supplies the owner's routine data for a shared view.
// Totals are the checklist sizes of the owner's current routines;
// Checked maps a calendar date to the number of items the owner ticked
// off that day for the slot.
type RoutineCoverage struct {
	MorningTotal   int
	EveningTotal   int
	MorningChecked map[time.Time]int
	EveningChecked map[time.Time]int
}

// DayComparison is one calendar day in the shared view. Actual values
// are exposed only as signed differences from the targets
// (actual - target), and only when both sides exist. Days without a
// record still appear, with all diffs nil.
type DayComparison struct {
	Date                 time.Time
	WeightDiff           *float64
	BodyFatDiff          *float64
	MuscleMassDiff       *float64
	MusclePercentageDiff *float64
	ExerciseDurationDiff *int

	WeightSuccess           bool
	BodyFatSuccess          bool
	MuscleMassSuccess       bool
	MusclePercentageSuccess bool
	ExerciseDurationSuccess bool

	MorningRoutineTotal   int
	MorningRoutineChecked int
	EveningRoutineTotal   int
	EveningRoutineChecked int
}

// ComparisonSummary aggregates the shared view by counting across all
// days of the period: recorded days are days where the diff was
// computable, and the rate is 100*success/recorded (0 when nothing was
// recorded). Routine rates count only full completions.
type ComparisonSummary struct {
	TotalDays int

	WeightSuccessCount           int
	BodyFatSuccessCount          int
	MuscleMassSuccessCount       int
	MusclePercentageSuccessCount int
	ExerciseDurationSuccessCount int

	WeightRecordedDays           int
	BodyFatRecordedDays          int
	MuscleMassRecordedDays       int
	MusclePercentageRecordedDays int
	ExerciseDurationRecordedDays int

	WeightSuccessRate           float64
	BodyFatSuccessRate          float64
	MuscleMassSuccessRate       float64
	MusclePercentageSuccessRate float64
	ExerciseDurationSuccessRate float64

	MorningRoutineSuccessDays  int
	EveningRoutineSuccessDays  int
	MorningRoutineRecordedDays int
	EveningRoutineRecordedDays int
	MorningRoutineSuccessRate  float64
	EveningRoutineSuccessRate  float64
}

// Compare builds the shared daily progress for a challenge, one entry
// per calendar day from start through end inclusive. routines may be
// nil when no routine data should be included.
func Compare(t Targets, records map[time.Time]DayRecord, start, end time.Time, routines *RoutineCoverage) ([]DayComparison, ComparisonSummary) {
	var days []DayComparison
	eachDay(start, end, func(date time.Time) {
		day := DayComparison{Date: date}

		if rec, ok := records[date]; ok {
			if rec.Weight != nil && t.Weight != nil {
				d := *rec.Weight - *t.Weight
				day.WeightDiff = &d
			}
			if rec.BodyFatPercentage != nil && t.BodyFatPercent != nil {
				d := *rec.BodyFatPercentage - *t.BodyFatPercent
				day.BodyFatDiff = &d
			}
			if rec.MuscleMass != nil && t.MuscleMass != nil {
				d := *rec.MuscleMass - *t.MuscleMass
				day.MuscleMassDiff = &d
			}
			if rec.ExerciseDuration != nil && t.ExerciseDuration != nil {
				d := *rec.ExerciseDuration - *t.ExerciseDuration
				day.ExerciseDurationDiff = &d
			}
			day.WeightSuccess = checkSuccess(rec.Weight, t.Weight, false)
			day.BodyFatSuccess = checkSuccess(rec.BodyFatPercentage, t.BodyFatPercent, false)
			day.MuscleMassSuccess = checkSuccess(rec.MuscleMass, t.MuscleMass, true)
			day.ExerciseDurationSuccess = checkSuccess(intToFloat(rec.ExerciseDuration), intToFloat(t.ExerciseDuration), true)
		}

		if routines != nil {
			day.MorningRoutineTotal = routines.MorningTotal
			day.MorningRoutineChecked = routines.MorningChecked[date]
			day.EveningRoutineTotal = routines.EveningTotal
			day.EveningRoutineChecked = routines.EveningChecked[date]
		}

		days = append(days, day)
	})

	sum := ComparisonSummary{TotalDays: len(days)}
	for _, d := range days {
		if d.WeightDiff != nil {
			sum.WeightRecordedDays++
			if d.WeightSuccess {
				sum.WeightSuccessCount++
			}
		}
		if d.BodyFatDiff != nil {
			sum.BodyFatRecordedDays++
			if d.BodyFatSuccess {
				sum.BodyFatSuccessCount++
			}
		}
		if d.MuscleMassDiff != nil {
			sum.MuscleMassRecordedDays++
			if d.MuscleMassSuccess {
				sum.MuscleMassSuccessCount++
			}
		}
		if d.ExerciseDurationDiff != nil {
			sum.ExerciseDurationRecordedDays++
			if d.ExerciseDurationSuccess {
				sum.ExerciseDurationSuccessCount++
			}
		}

		if d.MorningRoutineTotal > 0 {
			sum.MorningRoutineRecordedDays++
			if d.MorningRoutineChecked == d.MorningRoutineTotal {
				sum.MorningRoutineSuccessDays++
			}
		}
		if d.EveningRoutineTotal > 0 {
			sum.EveningRoutineRecordedDays++
			if d.EveningRoutineChecked == d.EveningRoutineTotal {
				sum.EveningRoutineSuccessDays++
			}
		}
	}

	sum.WeightSuccessRate = rate(sum.WeightSuccessCount, sum.WeightRecordedDays)
	sum.BodyFatSuccessRate = rate(sum.BodyFatSuccessCount, sum.BodyFatRecordedDays)
	sum.MuscleMassSuccessRate = rate(sum.MuscleMassSuccessCount, sum.MuscleMassRecordedDays)
	sum.MusclePercentageSuccessRate = rate(sum.MusclePercentageSuccessCount, sum.MusclePercentageRecordedDays)
	sum.ExerciseDurationSuccessRate = rate(sum.ExerciseDurationSuccessCount, sum.ExerciseDurationRecordedDays)
	sum.MorningRoutineSuccessRate = rate(sum.MorningRoutineSuccessDays, sum.MorningRoutineRecordedDays)
	sum.EveningRoutineSuccessRate = rate(sum.EveningRoutineSuccessDays, sum.EveningRoutineRecordedDays)

	return days, sum
}

func rate(success, recorded int) float64 {
	if recorded == 0 {
		return 0
	}
	return float64(success) / float64(recorded) * 100
}
