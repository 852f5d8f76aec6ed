// Package memory provides in-memory implementations of the repository
// interfaces. They mirror the mongo implementations' semantics (ordering,
// uniqueness, sentinel errors) closely enough that services can be unit
// tested without a running database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) SetActiveRoutine(_ context.Context, id, routineID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ActiveRoutineID = &routineID
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

// CustomerRepository is an in-memory repository.CustomerRepository.
type CustomerRepository struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]domain.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[primitive.ObjectID]domain.Customer)}
}

func (r *CustomerRepository) Create(_ context.Context, customer *domain.Customer) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == customer.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	customer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	if customer.RegistrationDate.IsZero() {
		customer.RegistrationDate = now
	}
	r.customers[customer.ID] = *customer
	return customer.ID, nil
}

func (r *CustomerRepository) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email {
			customer := c
			return &customer, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *CustomerRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[id]; ok {
		customer := c
		return &customer, nil
	}
	return nil, repository.ErrNotFound
}

func (r *CustomerRepository) List(_ context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers := make([]domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].RegistrationDate.After(customers[j].RegistrationDate)
	})
	return customers, nil
}

func (r *CustomerRepository) Update(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.customers[customer.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, c := range r.customers {
		if id != customer.ID && c.Email == customer.Email {
			return repository.ErrDuplicate
		}
	}
	customer.CreatedAt = existing.CreatedAt
	customer.ActiveRoutineID = existing.ActiveRoutineID
	customer.UpdatedAt = time.Now().UTC()
	r.customers[customer.ID] = *customer
	return nil
}

func (r *CustomerRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *CustomerRepository) SetActiveRoutine(_ context.Context, id, routineID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.ActiveRoutineID = &routineID
	c.UpdatedAt = time.Now().UTC()
	r.customers[id] = c
	return nil
}

// AttendanceRepository is an in-memory repository.AttendanceRepository.
// Records are kept newest-first, like the mongo sort order.
type AttendanceRepository struct {
	mu      sync.Mutex
	records []domain.AttendanceRecord
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{}
}

func (r *AttendanceRepository) Append(_ context.Context, record *domain.AttendanceRecord) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = primitive.NewObjectID()
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	r.records = append([]domain.AttendanceRecord{*record}, r.records...)
	return record.ID, nil
}

func (r *AttendanceRepository) LastByProfile(_ context.Context, profileID primitive.ObjectID) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ProfileID == profileID {
			record := rec
			return &record, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AttendanceRepository) ListByProfile(_ context.Context, profileID primitive.ObjectID) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := []domain.AttendanceRecord{}
	for _, rec := range r.records {
		if rec.ProfileID == profileID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *AttendanceRepository) ListAll(_ context.Context) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AttendanceRecord{}, r.records...), nil
}

func (r *AttendanceRepository) CountSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, rec := range r.records {
		if !rec.Timestamp.Before(since) {
			count++
		}
	}
	return count, nil
}

// ExerciseRepository is an in-memory repository.ExerciseRepository.
type ExerciseRepository struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *ExerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *ExerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.exercises[id]; ok {
		exercise := e
		return &exercise, nil
	}
	return nil, repository.ErrNotFound
}

func (r *ExerciseRepository) List(_ context.Context) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercises := make([]domain.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		exercises = append(exercises, e)
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}

func (r *ExerciseRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *ExerciseRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.exercises)), nil
}

// RoutineRepository is an in-memory repository.RoutineRepository.
type RoutineRepository struct {
	mu       sync.Mutex
	routines map[primitive.ObjectID]domain.Routine
}

func NewRoutineRepository() *RoutineRepository {
	return &RoutineRepository{routines: make(map[primitive.ObjectID]domain.Routine)}
}

func (r *RoutineRepository) Create(_ context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	routine.ID = primitive.NewObjectID()
	if routine.CreatedAt.IsZero() {
		routine.CreatedAt = time.Now().UTC()
	}
	r.routines[routine.ID] = *routine
	return routine.ID, nil
}

func (r *RoutineRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rt, ok := r.routines[id]; ok {
		routine := rt
		return &routine, nil
	}
	return nil, repository.ErrNotFound
}

func (r *RoutineRepository) List(_ context.Context) ([]domain.Routine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	routines := make([]domain.Routine, 0, len(r.routines))
	for _, rt := range r.routines {
		routines = append(routines, rt)
	}
	sort.Slice(routines, func(i, j int) bool { return routines[i].CreatedAt.After(routines[j].CreatedAt) })
	return routines, nil
}

func (r *RoutineRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.routines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.routines, id)
	return nil
}

func (r *RoutineRepository) SetAssignedTo(_ context.Context, id, clientID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.routines[id]
	if !ok {
		return repository.ErrNotFound
	}
	rt.AssignedToID = &clientID
	r.routines[id] = rt
	return nil
}

func (r *RoutineRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.routines)), nil
}

// WorkoutLogRepository is an in-memory repository.WorkoutLogRepository.
type WorkoutLogRepository struct {
	mu   sync.Mutex
	logs []domain.WorkoutLog
}

func NewWorkoutLogRepository() *WorkoutLogRepository {
	return &WorkoutLogRepository{}
}

func (r *WorkoutLogRepository) Create(_ context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ProfileID == log.ProfileID && l.Day == log.Day {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	log.ID = primitive.NewObjectID()
	r.logs = append([]domain.WorkoutLog{*log}, r.logs...)
	return log.ID, nil
}

func (r *WorkoutLogRepository) GetByProfileAndDay(_ context.Context, profileID primitive.ObjectID, day string) (*domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ProfileID == profileID && l.Day == day {
			log := l
			return &log, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *WorkoutLogRepository) ListByProfile(_ context.Context, profileID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	logs := []domain.WorkoutLog{}
	for _, l := range r.logs {
		if l.ProfileID == profileID {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })
	return logs, nil
}

// SuggestionRepository is an in-memory repository.SuggestionRepository.
type SuggestionRepository struct {
	mu          sync.Mutex
	suggestions []domain.Suggestion
}

func NewSuggestionRepository() *SuggestionRepository {
	return &SuggestionRepository{}
}

func (r *SuggestionRepository) Create(_ context.Context, suggestion *domain.Suggestion) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	suggestion.ID = primitive.NewObjectID()
	if suggestion.Date.IsZero() {
		suggestion.Date = time.Now().UTC()
	}
	r.suggestions = append([]domain.Suggestion{*suggestion}, r.suggestions...)
	return suggestion.ID, nil
}

func (r *SuggestionRepository) List(_ context.Context) ([]domain.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Suggestion{}, r.suggestions...), nil
}
