package service

import (
	"context"
	"testing"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRoutineFixture() (RoutineService, *memory.RoutineRepository, *memory.UserRepository, *memory.CustomerRepository) {
	routineRepo := memory.NewRoutineRepository()
	userRepo := memory.NewUserRepository()
	customerRepo := memory.NewCustomerRepository()
	return NewRoutineService(routineRepo, userRepo, customerRepo), routineRepo, userRepo, customerRepo
}

func addCustomer(t *testing.T, repo *memory.CustomerRepository, email string) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{Name: "Cliente", Email: email, Status: domain.StatusActive}
	_, err := repo.Create(context.Background(), customer)
	require.NoError(t, err)
	return customer
}

func TestCreateRoutineNormalizesSchedule(t *testing.T) {
	svc, _, _, _ := newRoutineFixture()
	ctx := context.Background()
	author := testProfile(domain.RoleTrainer)

	routine, err := svc.CreateRoutine(ctx, author, "Fuerza 5x5", "", true, domain.Schedule{
		domain.DayLunes: {{ID: primitive.NewObjectID(), Name: "Sentadillas", Sets: 5, Weight: 80}},
	})
	require.NoError(t, err)

	require.Len(t, routine.Schedule, 7)
	for _, day := range domain.WeekDays {
		require.Contains(t, routine.Schedule, day)
	}
	assert.Len(t, routine.Schedule[domain.DayLunes], 1)
	assert.Empty(t, routine.Schedule[domain.DayDomingo])

	// The stored copy round-trips with all seven keys too.
	stored, err := svc.GetRoutine(ctx, routine.ID)
	require.NoError(t, err)
	assert.Equal(t, routine.Schedule, stored.Schedule)
}

func TestCreateRoutineRequiresName(t *testing.T) {
	svc, _, _, _ := newRoutineFixture()
	_, err := svc.CreateRoutine(context.Background(), testProfile(domain.RoleTrainer), "", "", true, nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestListRoutinesTabs(t *testing.T) {
	svc, routineRepo, _, customerRepo := newRoutineFixture()
	ctx := context.Background()
	trainer := testProfile(domain.RoleTrainer)
	customer := addCustomer(t, customerRepo, "cliente@example.com")
	client := customer.AsProfile()

	mine, err := svc.CreateRoutine(ctx, client, "Mi plan", "", false, nil)
	require.NoError(t, err)
	public, err := svc.CreateRoutine(ctx, trainer, "Plan público", "", true, nil)
	require.NoError(t, err)
	private, err := svc.CreateRoutine(ctx, trainer, "Plan privado", "", false, nil)
	require.NoError(t, err)
	require.NoError(t, routineRepo.SetAssignedTo(ctx, private.ID, client.ID))

	// mine: only the client's own authoring.
	got, err := svc.ListRoutines(ctx, client, TabMine)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	// gallery: a client sees public routines only.
	got, err = svc.ListRoutines(ctx, client, TabGallery)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, public.ID, got[0].ID)

	// gallery: staff see everything.
	got, err = svc.ListRoutines(ctx, trainer, TabGallery)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// assigned: the dedicated routine surfaces for its client.
	got, err = svc.ListRoutines(ctx, client, TabAssigned)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, private.ID, got[0].ID)

	// assigned is a client-side view; staff get nothing there.
	got, err = svc.ListRoutines(ctx, trainer, TabAssigned)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteRoutinePermissions(t *testing.T) {
	svc, _, _, customerRepo := newRoutineFixture()
	ctx := context.Background()
	customer := addCustomer(t, customerRepo, "cliente@example.com")
	client := customer.AsProfile()
	otherCustomer := addCustomer(t, customerRepo, "otro@example.com")
	other := otherCustomer.AsProfile()

	routine, err := svc.CreateRoutine(ctx, client, "Mi plan", "", false, nil)
	require.NoError(t, err)

	err = svc.DeleteRoutine(ctx, other, routine.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The author may delete their own plan.
	require.NoError(t, svc.DeleteRoutine(ctx, client, routine.ID))

	err = svc.DeleteRoutine(ctx, client, routine.ID)
	assert.ErrorIs(t, err, ErrRoutineNotFound)
}

func TestAssignActiveIdempotent(t *testing.T) {
	svc, _, _, customerRepo := newRoutineFixture()
	ctx := context.Background()
	customer := addCustomer(t, customerRepo, "cliente@example.com")
	client := customer.AsProfile()

	routine, err := svc.CreateRoutine(ctx, client, "Mi plan", "", false, nil)
	require.NoError(t, err)

	require.NoError(t, svc.AssignActive(ctx, client, routine.ID))
	require.NoError(t, svc.AssignActive(ctx, client, routine.ID))

	stored, err := customerRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ActiveRoutineID)
	assert.Equal(t, routine.ID, *stored.ActiveRoutineID)
}

func TestAssignActiveSwitchesPlans(t *testing.T) {
	svc, _, _, customerRepo := newRoutineFixture()
	ctx := context.Background()
	customer := addCustomer(t, customerRepo, "cliente@example.com")
	client := customer.AsProfile()

	first, err := svc.CreateRoutine(ctx, client, "Plan A", "", false, nil)
	require.NoError(t, err)
	second, err := svc.CreateRoutine(ctx, client, "Plan B", "", false, nil)
	require.NoError(t, err)

	require.NoError(t, svc.AssignActive(ctx, client, first.ID))
	require.NoError(t, svc.AssignActive(ctx, client, second.ID))

	stored, err := customerRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *stored.ActiveRoutineID)
}

func TestAssignActiveStaffProfile(t *testing.T) {
	svc, _, userRepo, _ := newRoutineFixture()
	ctx := context.Background()
	require.NoError(t, SeedAdmin(ctx, userRepo))
	admin, err := userRepo.GetByEmail(ctx, "admin@titangym.com")
	require.NoError(t, err)

	routine, err := svc.CreateRoutine(ctx, admin.AsProfile(), "Plan del staff", "", false, nil)
	require.NoError(t, err)
	require.NoError(t, svc.AssignActive(ctx, admin.AsProfile(), routine.ID))

	stored, err := userRepo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ActiveRoutineID)
	assert.Equal(t, routine.ID, *stored.ActiveRoutineID)
}

func TestAssignActiveMissingRoutine(t *testing.T) {
	svc, _, _, customerRepo := newRoutineFixture()
	customer := addCustomer(t, customerRepo, "cliente@example.com")
	err := svc.AssignActive(context.Background(), customer.AsProfile(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrRoutineNotFound)
}

func TestAssignToClient(t *testing.T) {
	svc, routineRepo, _, customerRepo := newRoutineFixture()
	ctx := context.Background()
	trainer := testProfile(domain.RoleTrainer)
	customer := addCustomer(t, customerRepo, "cliente@example.com")

	routine, err := svc.CreateRoutine(ctx, trainer, "Hipertrofia", "", false, nil)
	require.NoError(t, err)

	err = svc.AssignToClient(ctx, customer.AsProfile(), routine.ID, customer.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.AssignToClient(ctx, trainer, routine.ID, customer.ID))

	stored, err := routineRepo.GetByID(ctx, routine.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AssignedToID)
	assert.Equal(t, customer.ID, *stored.AssignedToID)
}

func TestAssignToClientUnknownCustomer(t *testing.T) {
	svc, _, _, _ := newRoutineFixture()
	ctx := context.Background()
	trainer := testProfile(domain.RoleTrainer)
	routine, err := svc.CreateRoutine(ctx, trainer, "Hipertrofia", "", false, nil)
	require.NoError(t, err)

	err = svc.AssignToClient(ctx, trainer, routine.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
