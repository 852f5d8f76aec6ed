package service

import (
	"context"
	"errors"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRoutineNotFound = errors.New("routine not found")
)

// RoutineTab selects which slice of the routines collection a listing
// shows.
type RoutineTab string

const (
	TabMine     RoutineTab = "mine"
	TabGallery  RoutineTab = "all"
	TabAssigned RoutineTab = "assigned"
)

type RoutineService interface {
	// CreateRoutine validates and stores a weekly plan. The schedule is
	// normalized so every weekday key exists even when empty.
	CreateRoutine(ctx context.Context, actor domain.Profile, name, description string, isPublic bool, schedule domain.Schedule) (*domain.Routine, error)
	GetRoutine(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	// ListRoutines applies the visibility rule for the chosen tab:
	// mine = authored by the viewer; all = public gallery (staff see every
	// public routine, which for staff is the whole gallery); assigned =
	// routines staff assigned to this client.
	ListRoutines(ctx context.Context, actor domain.Profile, tab RoutineTab) ([]domain.Routine, error)
	// DeleteRoutine is allowed for staff and for the author.
	DeleteRoutine(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error
	// AssignActive points the actor's profile at the routine. The write
	// is idempotent and lands only on the canonical profile record.
	AssignActive(ctx context.Context, actor domain.Profile, routineID primitive.ObjectID) error
	// AssignToClient lets staff dedicate a routine to one client, which
	// surfaces it under the client's "assigned" tab.
	AssignToClient(ctx context.Context, actor domain.Profile, routineID, clientID primitive.ObjectID) error
}

type routineService struct {
	routineRepo  repository.RoutineRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
}

func NewRoutineService(routineRepo repository.RoutineRepository, userRepo repository.UserRepository, customerRepo repository.CustomerRepository) RoutineService {
	return &routineService{
		routineRepo:  routineRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
	}
}

func (s *routineService) CreateRoutine(ctx context.Context, actor domain.Profile, name, description string, isPublic bool, schedule domain.Schedule) (*domain.Routine, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if schedule == nil {
		schedule = domain.Schedule{}
	}

	routine := &domain.Routine{
		Name:        name,
		Description: description,
		AuthorID:    actor.ID,
		AuthorName:  actor.Name,
		IsPublic:    isPublic,
		Schedule:    schedule.Normalized(),
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = id
	return routine, nil
}

func (s *routineService) GetRoutine(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *routineService) ListRoutines(ctx context.Context, actor domain.Profile, tab RoutineTab) ([]domain.Routine, error) {
	all, err := s.routineRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Routine, 0, len(all))
	for _, r := range all {
		switch tab {
		case TabMine:
			if r.AuthorID == actor.ID {
				filtered = append(filtered, r)
			}
		case TabAssigned:
			if actor.IsClient() && r.AssignedToID != nil && *r.AssignedToID == actor.ID {
				filtered = append(filtered, r)
			}
		default: // gallery
			if r.IsPublic || actor.IsStaff() {
				filtered = append(filtered, r)
			}
		}
	}
	return filtered, nil
}

func (s *routineService) DeleteRoutine(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error {
	routine, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}

	if !actor.IsStaff() && routine.AuthorID != actor.ID {
		return ErrPermissionDenied
	}

	return s.routineRepo.Delete(ctx, id)
}

func (s *routineService) AssignActive(ctx context.Context, actor domain.Profile, routineID primitive.ObjectID) error {
	if _, err := s.routineRepo.GetByID(ctx, routineID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}

	// One pointer, overwritten in place. Switching plans or re-selecting
	// the current one are the same write.
	if actor.IsClient() {
		return s.customerRepo.SetActiveRoutine(ctx, actor.ID, routineID)
	}
	return s.userRepo.SetActiveRoutine(ctx, actor.ID, routineID)
}

func (s *routineService) AssignToClient(ctx context.Context, actor domain.Profile, routineID, clientID primitive.ObjectID) error {
	if !actor.IsStaff() {
		return ErrPermissionDenied
	}

	if _, err := s.customerRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	if err := s.routineRepo.SetAssignedTo(ctx, routineID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}
	return nil
}
