package repository

import (
	"context"
	"time"

	"github.com/titangym/backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository holds the staff identities (admins, employees, trainers,
// receptionists).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetActiveRoutine(ctx context.Context, id, routineID primitive.ObjectID) error
}

// CustomerRepository holds the gym clients.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetActiveRoutine(ctx context.Context, id, routineID primitive.ObjectID) error
}

// AttendanceRepository is append-only: punches are never updated or
// removed through normal flow. Listings come back newest-first.
type AttendanceRepository interface {
	Append(ctx context.Context, record *domain.AttendanceRecord) (primitive.ObjectID, error)
	LastByProfile(ctx context.Context, profileID primitive.ObjectID) (*domain.AttendanceRecord, error)
	ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]domain.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]domain.AttendanceRecord, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// ExerciseRepository is the movement catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// RoutineRepository holds the weekly plans, newest-first.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	List(ctx context.Context) ([]domain.Routine, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetAssignedTo(ctx context.Context, id, clientID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// WorkoutLogRepository holds finished sessions. Logs are immutable once
// written; Create must reject a second log for the same (profile, day)
// with ErrDuplicate.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByProfileAndDay(ctx context.Context, profileID primitive.ObjectID, day string) (*domain.WorkoutLog, error)
	ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]domain.WorkoutLog, error)
}

// SuggestionRepository holds customer feedback shown on the dashboard.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.Suggestion) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Suggestion, error)
}
