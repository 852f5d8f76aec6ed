package service

import (
	"context"
	"errors"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository"
)

var (
	// ErrLocationRequired is returned when a punch arrives without a
	// geolocation fix. No record is written in that case.
	ErrLocationRequired = errors.New("a location fix is required to record attendance")
)

type AttendanceService interface {
	// Record appends a punch for the profile. The punch direction is the
	// inverse of the profile's most recent punch, starting with "in" on
	// an empty history.
	Record(ctx context.Context, actor domain.Profile, location *domain.Location) (*domain.AttendanceRecord, error)
	// ListMine returns the actor's own punches, newest first.
	ListMine(ctx context.Context, actor domain.Profile) ([]domain.AttendanceRecord, error)
	// ListAll returns everyone's punches. Staff only.
	ListAll(ctx context.Context, actor domain.Profile) ([]domain.AttendanceRecord, error)
	// CurrentStatus derives whether the actor is checked in right now.
	CurrentStatus(ctx context.Context, actor domain.Profile) (domain.AttendanceType, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo}
}

func (s *attendanceService) Record(ctx context.Context, actor domain.Profile, location *domain.Location) (*domain.AttendanceRecord, error) {
	if location == nil {
		return nil, ErrLocationRequired
	}

	punchType := domain.AttendanceIn
	last, err := s.attendanceRepo.LastByProfile(ctx, actor.ID)
	switch {
	case err == nil:
		punchType = last.Type.Inverse()
	case errors.Is(err, repository.ErrNotFound):
		// first ever punch stays "in"
	default:
		return nil, err
	}

	record := &domain.AttendanceRecord{
		ProfileID:   actor.ID,
		ProfileName: actor.Name,
		Type:        punchType,
		Timestamp:   time.Now().UTC(),
		Location:    location,
	}

	if _, err := s.attendanceRepo.Append(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) ListMine(ctx context.Context, actor domain.Profile) ([]domain.AttendanceRecord, error) {
	return s.attendanceRepo.ListByProfile(ctx, actor.ID)
}

func (s *attendanceService) ListAll(ctx context.Context, actor domain.Profile) ([]domain.AttendanceRecord, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	return s.attendanceRepo.ListAll(ctx)
}

func (s *attendanceService) CurrentStatus(ctx context.Context, actor domain.Profile) (domain.AttendanceType, error) {
	last, err := s.attendanceRepo.LastByProfile(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// nobody is checked in before their first punch
			return domain.AttendanceOut, nil
		}
		return "", err
	}
	return last.Type, nil
}
