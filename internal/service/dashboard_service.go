package service

import (
	"context"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"
)

// InsightGenerator is the advisory-text collaborator. Implementations
// must always return a usable sentence, falling back internally.
type InsightGenerator interface {
	Generate(ctx context.Context, suggestions []string) string
}

// Stats is the dashboard headline block.
type Stats struct {
	ActiveCustomers int     `json:"activeCustomers"`
	TotalCustomers  int     `json:"totalCustomers"`
	Revenue         float64 `json:"revenue"`
	VisitsToday     int64   `json:"visitsToday"`
	Routines        int64   `json:"routines"`
}

type DashboardService interface {
	Stats(ctx context.Context, actor domain.Profile) (*Stats, error)
	Suggestions(ctx context.Context, actor domain.Profile) ([]domain.Suggestion, error)
	// Insight runs the customer suggestions through the text generator.
	Insight(ctx context.Context, actor domain.Profile) (string, error)
}

type dashboardService struct {
	customerRepo   repository.CustomerRepository
	attendanceRepo repository.AttendanceRepository
	routineRepo    repository.RoutineRepository
	suggestionRepo repository.SuggestionRepository
	generator      InsightGenerator
}

func NewDashboardService(
	customerRepo repository.CustomerRepository,
	attendanceRepo repository.AttendanceRepository,
	routineRepo repository.RoutineRepository,
	suggestionRepo repository.SuggestionRepository,
	generator InsightGenerator,
) DashboardService {
	return &dashboardService{
		customerRepo:   customerRepo,
		attendanceRepo: attendanceRepo,
		routineRepo:    routineRepo,
		suggestionRepo: suggestionRepo,
		generator:      generator,
	}
}

func (s *dashboardService) Stats(ctx context.Context, actor domain.Profile) (*Stats, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalCustomers: len(customers)}
	for _, c := range customers {
		if c.Status == domain.StatusActive {
			stats.ActiveCustomers++
		}
		stats.Revenue += c.AmountPaid
	}

	midnight := domain.DateOnly(time.Now().UTC())
	visits, err := s.attendanceRepo.CountSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	stats.VisitsToday = visits

	routines, err := s.routineRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.Routines = routines

	return stats, nil
}

func (s *dashboardService) Suggestions(ctx context.Context, actor domain.Profile) ([]domain.Suggestion, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.suggestionRepo.List(ctx)
}

func (s *dashboardService) Insight(ctx context.Context, actor domain.Profile) (string, error) {
	if !actor.IsStaff() {
		return "", ErrPermissionDenied
	}

	suggestions, err := s.suggestionRepo.List(ctx)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		texts = append(texts, sg.Text)
	}
	return s.generator.Generate(ctx, texts), nil
}
