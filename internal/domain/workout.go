package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// caloriesPerKgRep is the display heuristic the dashboard shows. It is a
// cosmetic estimate, not a physiological model.
const caloriesPerKgRep = 0.1

// SetLog is one set inside a live session or a persisted log.
type SetLog struct {
	Reps      int     `bson:"reps" json:"reps"`
	Weight    float64 `bson:"weight" json:"weight"`
	Completed bool    `bson:"completed" json:"completed"`
}

// ExerciseLog groups the sets performed for one exercise. Name is a
// snapshot of the scheduled exercise name, never re-resolved against the
// catalog.
type ExerciseLog struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name       string             `bson:"name" json:"name"`
	Sets       []SetLog           `bson:"sets" json:"sets"`
}

// WorkoutLog is the immutable record of one finished training session.
// Day holds the date-only form (YYYY-MM-DD) and backs the one-log-per-day
// uniqueness guard.
type WorkoutLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID primitive.ObjectID `bson:"profileId" json:"profileId"`
	RoutineID primitive.ObjectID `bson:"routineId" json:"routineId"`
	Date      time.Time          `bson:"date" json:"date"`
	Day       string             `bson:"day" json:"-"`
	DayName   string             `bson:"dayName" json:"dayName"`
	Exercises []ExerciseLog      `bson:"exercises" json:"exercises"`
}

// DateOnly strips the time of day, matching how logs are compared.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Calories estimates the energy burned across all completed sets.
// Incomplete sets contribute nothing.
func (w *WorkoutLog) Calories() float64 {
	var total float64
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Completed {
				total += set.Weight * float64(set.Reps) * caloriesPerKgRep
			}
		}
	}
	return total
}
