package service

import (
	"context"
	"errors"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("validation failed")
)

type ExerciseService interface {
	// CreateExercise adds a movement to the catalog under the creating
	// profile. Any authenticated profile may contribute.
	CreateExercise(ctx context.Context, actor domain.Profile, name, category string, isPublic bool) (*domain.Exercise, error)
	// ListExercises returns the catalog filtered for the viewer: public
	// entries plus the viewer's own private ones.
	ListExercises(ctx context.Context, actor domain.Profile) ([]domain.Exercise, error)
	// DeleteExercise removes an entry. Staff only; schedules and logs
	// that copied its name are unaffected.
	DeleteExercise(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error
	// SeedDefaults inserts the starter movements once, when the catalog
	// is empty.
	SeedDefaults(ctx context.Context) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) CreateExercise(ctx context.Context, actor domain.Profile, name, category string, isPublic bool) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if category == "" {
		category = "General"
	}

	exercise := &domain.Exercise{
		Name:       name,
		Category:   category,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		IsPublic:   isPublic,
	}

	id, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, actor domain.Profile) ([]domain.Exercise, error) {
	all, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.Exercise, 0, len(all))
	for _, ex := range all {
		if ex.VisibleTo(actor.ID) {
			visible = append(visible, ex)
		}
	}
	return visible, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, actor domain.Profile, id primitive.ObjectID) error {
	if !actor.IsStaff() {
		return ErrPermissionDenied
	}
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

// defaultExercises is the starter catalog every fresh install gets.
var defaultExercises = []domain.Exercise{
	{Name: "Press de Banca", Category: "Pecho", AuthorName: "TitanGym", IsPublic: true},
	{Name: "Sentadillas", Category: "Pierna", AuthorName: "TitanGym", IsPublic: true},
	{Name: "Peso Muerto", Category: "Espalda", AuthorName: "TitanGym", IsPublic: true},
	{Name: "Press Militar", Category: "Hombro", AuthorName: "TitanGym", IsPublic: true},
}

func (s *exerciseService) SeedDefaults(ctx context.Context) error {
	count, err := s.exerciseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	systemAuthor := primitive.NewObjectID()
	for _, ex := range defaultExercises {
		ex.AuthorID = systemAuthor
		if _, err := s.exerciseRepo.Create(ctx, &ex); err != nil {
			return err
		}
	}
	log.WithField("count", len(defaultExercises)).Info("seeded exercise catalog")
	return nil
}
