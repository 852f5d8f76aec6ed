package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScheduleNormalized(t *testing.T) {
	bench := ScheduledExercise{ID: primitive.NewObjectID(), Name: "Press de Banca", Sets: 4, Weight: 60}
	s := Schedule{
		DayLunes:  {bench},
		"Funday":  {bench},
		DayJueves: nil,
	}

	normalized := s.Normalized()

	require.Len(t, normalized, 7)
	for _, day := range WeekDays {
		require.Contains(t, normalized, day)
		assert.NotNil(t, normalized[day])
	}
	assert.Equal(t, []ScheduledExercise{bench}, normalized[DayLunes])
	assert.Empty(t, normalized[DayJueves])
	assert.NotContains(t, normalized, "Funday")
}

func TestScheduleNormalizedEmpty(t *testing.T) {
	normalized := Schedule{}.Normalized()
	require.Len(t, normalized, 7)
	for _, day := range WeekDays {
		assert.Empty(t, normalized[day])
	}
}

func TestDayName(t *testing.T) {
	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	for i, want := range WeekDays {
		assert.Equal(t, want, DayName(monday.AddDate(0, 0, i)))
	}
	assert.Equal(t, DayDomingo, DayName(monday.AddDate(0, 0, 6)))
}

func TestWorkoutLogCalories(t *testing.T) {
	log := WorkoutLog{
		Exercises: []ExerciseLog{
			{Name: "Sentadillas", Sets: []SetLog{
				{Reps: 10, Weight: 80, Completed: true},
				{Reps: 8, Weight: 80, Completed: false},
			}},
			{Name: "Peso Muerto", Sets: []SetLog{
				{Reps: 5, Weight: 100, Completed: true},
			}},
		},
	}

	// 10*80*0.1 + 5*100*0.1; the incomplete set does not count.
	assert.InDelta(t, 130.0, log.Calories(), 0.001)
}

func TestWorkoutLogCaloriesAllIncomplete(t *testing.T) {
	log := WorkoutLog{
		Exercises: []ExerciseLog{
			{Name: "Press Militar", Sets: []SetLog{{Reps: 12, Weight: 40}}},
		},
	}
	assert.Zero(t, log.Calories())
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 8, 28, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}

func TestAttendanceTypeInverse(t *testing.T) {
	assert.Equal(t, AttendanceOut, AttendanceIn.Inverse())
	assert.Equal(t, AttendanceIn, AttendanceOut.Inverse())
}
