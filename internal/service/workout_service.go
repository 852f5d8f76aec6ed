package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoActiveRoutine = errors.New("no active routine selected")
	ErrAlreadyTrained  = errors.New("a workout was already completed today")
	ErrNoSession       = errors.New("no workout session in progress")
	ErrEmptySession    = errors.New("the session has no exercises to log")
	ErrSetOutOfRange   = errors.New("exercise or set index out of range")
)

// SessionState is the per-profile workout state, re-evaluated on every
// status call.
type SessionState string

const (
	StateNoActiveRoutine SessionState = "no_active_routine"
	StateCompletedToday  SessionState = "completed_today"
	StateInProgress      SessionState = "in_progress"
)

// Session is a live, not-yet-persisted workout. Set edits mutate it in
// place; nothing reaches the log collection until Finish.
type Session struct {
	ID          string               `json:"id"`
	RoutineID   primitive.ObjectID   `json:"routineId"`
	RoutineName string               `json:"routineName"`
	DayName     string               `json:"dayName"`
	StartedAt   time.Time            `json:"startedAt"`
	Exercises   []domain.ExerciseLog `json:"exercises"`
}

// SessionStatus bundles the state with whatever detail that state has.
type SessionStatus struct {
	State   SessionState `json:"state"`
	Session *Session     `json:"session,omitempty"`
	Streak  int          `json:"streak"`
}

type WorkoutService interface {
	// Status re-derives the state machine for the actor: no active
	// routine, already completed today, or in progress (with the live
	// session, started on demand).
	Status(ctx context.Context, actor domain.Profile) (*SessionStatus, error)
	// StartSession seeds today's session from the active routine's slot
	// for the current weekday. Calling it again on the same day returns
	// the existing session untouched.
	StartSession(ctx context.Context, actor domain.Profile) (*Session, error)
	// UpdateSet edits one set of the live session.
	UpdateSet(ctx context.Context, actor domain.Profile, exerciseIdx, setIdx int, reps int, weight float64, completed bool) (*Session, error)
	// Finish persists the session as an immutable log and ends the day.
	Finish(ctx context.Context, actor domain.Profile) (*domain.WorkoutLog, error)
	// Streak counts consecutive training days walking back from today.
	Streak(ctx context.Context, actor domain.Profile) (int, error)
	// History lists the actor's logs, optionally filtered by weekday name.
	History(ctx context.Context, actor domain.Profile, dayName string) ([]domain.WorkoutLog, error)
	// CaloriesToday estimates energy burned in today's persisted log.
	CaloriesToday(ctx context.Context, actor domain.Profile) (float64, error)
}

type workoutService struct {
	logRepo      repository.WorkoutLogRepository
	routineRepo  repository.RoutineRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository

	mu       sync.Mutex
	sessions map[primitive.ObjectID]*Session
}

func NewWorkoutService(
	logRepo repository.WorkoutLogRepository,
	routineRepo repository.RoutineRepository,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
) WorkoutService {
	return &workoutService{
		logRepo:      logRepo,
		routineRepo:  routineRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		sessions:     make(map[primitive.ObjectID]*Session),
	}
}

const dayLayout = "2006-01-02"

// activeRoutineID reads the pointer off the canonical profile record.
func (s *workoutService) activeRoutineID(ctx context.Context, actor domain.Profile) (*primitive.ObjectID, error) {
	if actor.IsClient() {
		customer, err := s.customerRepo.GetByID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		return customer.ActiveRoutineID, nil
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return user.ActiveRoutineID, nil
}

func (s *workoutService) trainedToday(ctx context.Context, profileID primitive.ObjectID) (bool, error) {
	today := time.Now().UTC().Format(dayLayout)
	_, err := s.logRepo.GetByProfileAndDay(ctx, profileID, today)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *workoutService) Status(ctx context.Context, actor domain.Profile) (*SessionStatus, error) {
	streak, err := s.Streak(ctx, actor)
	if err != nil {
		return nil, err
	}

	done, err := s.trainedToday(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if done {
		return &SessionStatus{State: StateCompletedToday, Streak: streak}, nil
	}

	routineID, err := s.activeRoutineID(ctx, actor)
	if err != nil {
		return nil, err
	}
	if routineID == nil {
		return &SessionStatus{State: StateNoActiveRoutine, Streak: streak}, nil
	}

	s.mu.Lock()
	session := s.sessions[actor.ID]
	s.mu.Unlock()
	return &SessionStatus{State: StateInProgress, Session: session, Streak: streak}, nil
}

func (s *workoutService) StartSession(ctx context.Context, actor domain.Profile) (*Session, error) {
	done, err := s.trainedToday(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAlreadyTrained
	}

	routineID, err := s.activeRoutineID(ctx, actor)
	if err != nil {
		return nil, err
	}
	if routineID == nil {
		return nil, ErrNoActiveRoutine
	}

	routine, err := s.routineRepo.GetByID(ctx, *routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// stale pointer, the routine was deleted under us
			return nil, ErrNoActiveRoutine
		}
		return nil, err
	}

	now := time.Now().UTC()
	dayName := domain.DayName(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A session from an earlier day is stale and reseeded; the same-day
	// session is returned as-is so edits survive a page reload.
	if existing, ok := s.sessions[actor.ID]; ok {
		if domain.DateOnly(existing.StartedAt).Equal(domain.DateOnly(now)) && existing.RoutineID == routine.ID {
			return existing, nil
		}
	}

	scheduled := routine.Schedule[dayName]
	exercises := make([]domain.ExerciseLog, 0, len(scheduled))
	for _, ex := range scheduled {
		sets := make([]domain.SetLog, ex.Sets)
		for i := range sets {
			sets[i] = domain.SetLog{Reps: 0, Weight: ex.Weight, Completed: false}
		}
		exercises = append(exercises, domain.ExerciseLog{
			ExerciseID: ex.ID,
			Name:       ex.Name,
			Sets:       sets,
		})
	}

	session := &Session{
		ID:          uuid.NewString(),
		RoutineID:   routine.ID,
		RoutineName: routine.Name,
		DayName:     dayName,
		StartedAt:   now,
		Exercises:   exercises,
	}
	s.sessions[actor.ID] = session
	return session, nil
}

func (s *workoutService) UpdateSet(_ context.Context, actor domain.Profile, exerciseIdx, setIdx int, reps int, weight float64, completed bool) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[actor.ID]
	if !ok {
		return nil, ErrNoSession
	}
	if exerciseIdx < 0 || exerciseIdx >= len(session.Exercises) {
		return nil, ErrSetOutOfRange
	}
	sets := session.Exercises[exerciseIdx].Sets
	if setIdx < 0 || setIdx >= len(sets) {
		return nil, ErrSetOutOfRange
	}

	sets[setIdx] = domain.SetLog{Reps: reps, Weight: weight, Completed: completed}
	return session, nil
}

func (s *workoutService) Finish(ctx context.Context, actor domain.Profile) (*domain.WorkoutLog, error) {
	s.mu.Lock()
	session, ok := s.sessions[actor.ID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoSession
	}
	// Finishing requires something to log; completion of individual sets
	// does not, a user may end the day with every set unchecked.
	if len(session.Exercises) == 0 {
		return nil, ErrEmptySession
	}

	now := time.Now().UTC()
	log := &domain.WorkoutLog{
		ProfileID: actor.ID,
		RoutineID: session.RoutineID,
		Date:      now,
		Day:       now.Format(dayLayout),
		DayName:   session.DayName,
		Exercises: session.Exercises,
	}

	if _, err := s.logRepo.Create(ctx, log); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// a parallel finish won the race; drop the session anyway
			s.clearSession(actor.ID)
			return nil, ErrAlreadyTrained
		}
		return nil, err
	}

	s.clearSession(actor.ID)
	return log, nil
}

func (s *workoutService) clearSession(profileID primitive.ObjectID) {
	s.mu.Lock()
	delete(s.sessions, profileID)
	s.mu.Unlock()
}

func (s *workoutService) Streak(ctx context.Context, actor domain.Profile) (int, error) {
	logs, err := s.logRepo.ListByProfile(ctx, actor.ID)
	if err != nil {
		return 0, err
	}

	trained := make(map[string]struct{}, len(logs))
	for _, l := range logs {
		trained[l.Day] = struct{}{}
	}

	// Walk backward one day at a time. An empty today is not a gap yet:
	// the streak then counts completed days starting from yesterday.
	day := domain.DateOnly(time.Now().UTC())
	if _, ok := trained[day.Format(dayLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := trained[day.Format(dayLayout)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

func (s *workoutService) History(ctx context.Context, actor domain.Profile, dayName string) ([]domain.WorkoutLog, error) {
	logs, err := s.logRepo.ListByProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if dayName == "" {
		return logs, nil
	}

	filtered := make([]domain.WorkoutLog, 0, len(logs))
	for _, l := range logs {
		if l.DayName == dayName {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

func (s *workoutService) CaloriesToday(ctx context.Context, actor domain.Profile) (float64, error) {
	today := time.Now().UTC().Format(dayLayout)
	log, err := s.logRepo.GetByProfileAndDay(ctx, actor.ID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return log.Calories(), nil
}
