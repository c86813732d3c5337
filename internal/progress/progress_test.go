package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestCheckSuccess(t *testing.T) {
	tests := []struct {
		name           string
		actual, target *float64
		higherIsBetter bool
		want           bool
	}{
		{"nil actual", nil, fptr(70), false, false},
		{"nil target", fptr(70), nil, false, false},
		{"lower: equal counts", fptr(70), fptr(70), false, true},
		{"lower: below target", fptr(69.5), fptr(70), false, true},
		{"lower: above target", fptr(70.1), fptr(70), false, false},
		{"higher: equal counts", fptr(30), fptr(30), true, true},
		{"higher: above target", fptr(31), fptr(30), true, true},
		{"higher: below target", fptr(29.9), fptr(30), true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, checkSuccess(tc.actual, tc.target, tc.higherIsBetter))
		})
	}
}

func TestTrendLastDaySnapshot(t *testing.T) {
	targets := Targets{Weight: fptr(70)}
	records := map[time.Time]DayRecord{
		day("2024-01-01"): {Weight: fptr(72)},
		day("2024-01-03"): {Weight: fptr(69)},
	}

	days, sum := Trend(targets, records, day("2024-01-01"), day("2024-01-03"), day("2024-01-10"))

	require.Len(t, days, 2)
	assert.Equal(t, day("2024-01-01"), days[0].Date)
	assert.False(t, days[0].WeightSuccess)
	assert.Equal(t, day("2024-01-03"), days[1].Date)
	assert.True(t, days[1].WeightSuccess)

	// Summary judges only the latest recorded day.
	assert.Equal(t, 2, sum.TotalDays)
	assert.Equal(t, 1, sum.WeightSuccessCount)
	assert.Equal(t, 1, sum.WeightRecordedDays)
	assert.InDelta(t, 69.0/70.0*100, sum.WeightSuccessRate, 1e-9)
}

func TestTrendDurationSummedAcrossPeriod(t *testing.T) {
	targets := Targets{ExerciseDuration: iptr(120)}
	records := map[time.Time]DayRecord{
		day("2024-01-01"): {ExerciseDuration: iptr(50)},
		day("2024-01-02"): {ExerciseDuration: iptr(80)},
	}

	_, sum := Trend(targets, records, day("2024-01-01"), day("2024-01-03"), day("2024-01-10"))

	assert.Equal(t, 1, sum.ExerciseDurationSuccessCount)
	assert.Equal(t, 1, sum.ExerciseDurationRecordedDays)
	assert.InDelta(t, 130.0/120.0*100, sum.ExerciseDurationSuccessRate, 1e-9)
}

func TestTrendDurationZeroTarget(t *testing.T) {
	targets := Targets{ExerciseDuration: iptr(0)}
	records := map[time.Time]DayRecord{
		day("2024-01-01"): {ExerciseDuration: iptr(30)},
	}

	_, sum := Trend(targets, records, day("2024-01-01"), day("2024-01-03"), day("2024-01-10"))

	assert.Zero(t, sum.ExerciseDurationSuccessRate)
	assert.Zero(t, sum.ExerciseDurationSuccessCount)
	assert.Equal(t, 1, sum.ExerciseDurationRecordedDays)
}

func TestTrendSkipsFutureAndEmptyDays(t *testing.T) {
	targets := Targets{Weight: fptr(70)}
	records := map[time.Time]DayRecord{
		day("2024-01-01"): {Weight: fptr(71)},
		day("2024-01-02"): {MusclePercentage: fptr(40)}, // nothing tracked counts here
		day("2024-01-05"): {Weight: fptr(68)},           // after today
		day("2024-02-01"): {Weight: fptr(68)},           // outside range
	}

	days, sum := Trend(targets, records, day("2024-01-01"), day("2024-01-10"), day("2024-01-03"))

	require.Len(t, days, 1)
	assert.Equal(t, day("2024-01-01"), days[0].Date)
	assert.Equal(t, 1, sum.TotalDays)
}

func TestCompareEveryCalendarDay(t *testing.T) {
	targets := Targets{Weight: fptr(70)}
	records := map[time.Time]DayRecord{
		day("2024-01-01"): {Weight: fptr(72)},
		day("2024-01-03"): {Weight: fptr(69)},
	}

	days, sum := Compare(targets, records, day("2024-01-01"), day("2024-01-03"), nil)

	require.Len(t, days, 3)
	require.NotNil(t, days[0].WeightDiff)
	assert.InDelta(t, 2.0, *days[0].WeightDiff, 1e-9)
	assert.False(t, days[0].WeightSuccess)

	assert.Nil(t, days[1].WeightDiff)
	assert.False(t, days[1].WeightSuccess)

	require.NotNil(t, days[2].WeightDiff)
	assert.InDelta(t, -1.0, *days[2].WeightDiff, 1e-9)
	assert.True(t, days[2].WeightSuccess)

	assert.Equal(t, 3, sum.TotalDays)
	assert.Equal(t, 2, sum.WeightRecordedDays)
	assert.Equal(t, 1, sum.WeightSuccessCount)
	assert.InDelta(t, 50.0, sum.WeightSuccessRate, 1e-9)
}

func TestCompareNoDiffWithoutTarget(t *testing.T) {
	records := map[time.Time]DayRecord{
		day("2024-01-01"): {Weight: fptr(72)},
	}

	days, sum := Compare(Targets{}, records, day("2024-01-01"), day("2024-01-01"), nil)

	require.Len(t, days, 1)
	assert.Nil(t, days[0].WeightDiff)
	assert.Zero(t, sum.WeightRecordedDays)
	assert.Zero(t, sum.WeightSuccessRate)
}

func TestCompareRoutineCoverage(t *testing.T) {
	cov := &RoutineCoverage{
		MorningTotal: 2,
		MorningChecked: map[time.Time]int{
			day("2024-01-01"): 2,
			day("2024-01-02"): 1,
		},
		EveningChecked: map[time.Time]int{},
	}

	days, sum := Compare(Targets{}, nil, day("2024-01-01"), day("2024-01-03"), cov)

	require.Len(t, days, 3)
	assert.Equal(t, 2, days[0].MorningRoutineChecked)
	assert.Equal(t, 1, days[1].MorningRoutineChecked)
	assert.Equal(t, 0, days[2].MorningRoutineChecked)

	// Only fully completed days count as routine successes.
	assert.Equal(t, 3, sum.MorningRoutineRecordedDays)
	assert.Equal(t, 1, sum.MorningRoutineSuccessDays)
	assert.InDelta(t, 100.0/3.0, sum.MorningRoutineSuccessRate, 1e-9)

	// No evening routine configured at all.
	assert.Zero(t, sum.EveningRoutineRecordedDays)
	assert.Zero(t, sum.EveningRoutineSuccessRate)
}

func TestEachDayInclusive(t *testing.T) {
	var got []time.Time
	eachDay(day("2024-02-27"), day("2024-03-01"), func(d time.Time) {
		got = append(got, d)
	})
	require.Len(t, got, 4) // leap year, 02-29 included
	assert.Equal(t, day("2024-02-29"), got[2])
	assert.Equal(t, day("2024-03-01"), got[3])
}
