package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator records the suggestion texts it was handed.
type stubGenerator struct {
	got []string
}

func (g *stubGenerator) Generate(_ context.Context, suggestions []string) string {
	g.got = suggestions
	return "Resumen: " + strings.Join(suggestions, "; ")
}

type dashboardFixture struct {
	svc            DashboardService
	customerRepo   *memory.CustomerRepository
	attendanceRepo *memory.AttendanceRepository
	routineRepo    *memory.RoutineRepository
	suggestionRepo *memory.SuggestionRepository
	generator      *stubGenerator
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		customerRepo:   memory.NewCustomerRepository(),
		attendanceRepo: memory.NewAttendanceRepository(),
		routineRepo:    memory.NewRoutineRepository(),
		suggestionRepo: memory.NewSuggestionRepository(),
		generator:      &stubGenerator{},
	}
	f.svc = NewDashboardService(f.customerRepo, f.attendanceRepo, f.routineRepo, f.suggestionRepo, f.generator)
	return f
}

func TestDashboardStats(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	admin := testProfile(domain.RoleAdmin)

	_, err := f.customerRepo.Create(ctx, &domain.Customer{
		Name: "A", Email: "a@example.com", Status: domain.StatusActive, AmountPaid: 500,
	})
	require.NoError(t, err)
	_, err = f.customerRepo.Create(ctx, &domain.Customer{
		Name: "B", Email: "b@example.com", Status: domain.StatusInactive, AmountPaid: 300,
	})
	require.NoError(t, err)

	_, err = f.attendanceRepo.Append(ctx, &domain.AttendanceRecord{
		ProfileID: admin.ID, Type: domain.AttendanceIn, Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)
	// Yesterday's visit does not count as today's.
	_, err = f.attendanceRepo.Append(ctx, &domain.AttendanceRecord{
		ProfileID: admin.ID, Type: domain.AttendanceOut, Timestamp: time.Now().UTC().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	_, err = f.routineRepo.Create(ctx, &domain.Routine{Name: "Plan"})
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCustomers)
	assert.Equal(t, 1, stats.ActiveCustomers)
	assert.InDelta(t, 800.0, stats.Revenue, 0.001)
	assert.EqualValues(t, 1, stats.VisitsToday)
	assert.EqualValues(t, 1, stats.Routines)
}

func TestDashboardStaffGate(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	client := testProfile(domain.RoleClient)

	_, err := f.svc.Stats(ctx, client)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = f.svc.Suggestions(ctx, client)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = f.svc.Insight(ctx, client)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDashboardInsightFeedsSuggestionTexts(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()
	require.NoError(t, SeedSuggestions(ctx, f.suggestionRepo))

	text, err := f.svc.Insight(ctx, testProfile(domain.RoleAdmin))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Resumen:"))
	assert.Len(t, f.generator.got, 3)
}

func TestSeedSuggestionsIdempotent(t *testing.T) {
	repo := memory.NewSuggestionRepository()
	ctx := context.Background()
	require.NoError(t, SeedSuggestions(ctx, repo))
	require.NoError(t, SeedSuggestions(ctx, repo))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
