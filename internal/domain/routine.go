package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekday names used as schedule keys. These are fixed literals the whole
// system shares; the stored schedule always carries all seven.
const (
	DayLunes     = "Lunes"
	DayMartes    = "Martes"
	DayMiercoles = "Miércoles"
	DayJueves    = "Jueves"
	DayViernes   = "Viernes"
	DaySabado    = "Sábado"
	DayDomingo   = "Domingo"
)

// WeekDays lists the schedule keys in display order (Monday first).
var WeekDays = []string{
	DayLunes, DayMartes, DayMiercoles, DayJueves, DayViernes, DaySabado, DayDomingo,
}

// dayByWeekday is indexed by time.Weekday (Sunday = 0).
var dayByWeekday = [7]string{
	DayDomingo, DayLunes, DayMartes, DayMiercoles, DayJueves, DayViernes, DaySabado,
}

// DayName returns the schedule key for the given date.
func DayName(t time.Time) string {
	return dayByWeekday[int(t.Weekday())]
}

// ScheduledExercise is one planned movement inside a weekday slot. Name is
// copied from the catalog at authoring time on purpose: renaming or
// deleting the source exercise must not rewrite existing plans.
type ScheduledExercise struct {
	ID     primitive.ObjectID `bson:"id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Sets   int                `bson:"sets" json:"sets"`
	Weight float64            `bson:"weight" json:"weight"`
}

// Schedule maps each weekday name to its ordered exercise list.
type Schedule map[string][]ScheduledExercise

// Normalized returns a copy with every weekday key present. Days the
// author left out become empty lists; unknown keys are dropped.
func (s Schedule) Normalized() Schedule {
	out := make(Schedule, len(WeekDays))
	for _, day := range WeekDays {
		if exercises, ok := s[day]; ok && exercises != nil {
			out[day] = exercises
		} else {
			out[day] = []ScheduledExercise{}
		}
	}
	return out
}

// Routine is a named weekly plan. AssignedToID is set when staff assign
// the plan to a specific client; a client selects one routine as active
// via the pointer on their own Customer record.
type Routine struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	AuthorID     primitive.ObjectID  `bson:"authorId" json:"authorId"`
	AuthorName   string              `bson:"authorName" json:"authorName"`
	IsPublic     bool                `bson:"isPublic" json:"isPublic"`
	AssignedToID *primitive.ObjectID `bson:"assignedToId,omitempty" json:"assignedToId,omitempty"`
	Schedule     Schedule            `bson:"schedule" json:"schedule"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}
