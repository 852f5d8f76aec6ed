package service

import (
	"context"
	"testing"
	"time"

	"github.com/titangym/backend/internal/domain"
	"github.com/titangym/backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutFixture struct {
	svc          WorkoutService
	logRepo      *memory.WorkoutLogRepository
	routineRepo  *memory.RoutineRepository
	userRepo     *memory.UserRepository
	customerRepo *memory.CustomerRepository
}

func newWorkoutFixture() *workoutFixture {
	f := &workoutFixture{
		logRepo:      memory.NewWorkoutLogRepository(),
		routineRepo:  memory.NewRoutineRepository(),
		userRepo:     memory.NewUserRepository(),
		customerRepo: memory.NewCustomerRepository(),
	}
	f.svc = NewWorkoutService(f.logRepo, f.routineRepo, f.userRepo, f.customerRepo)
	return f
}

// newClientWithRoutine registers a customer whose active routine plans
// today with the given exercises.
func (f *workoutFixture) newClientWithRoutine(t *testing.T, today []domain.ScheduledExercise) domain.Profile {
	t.Helper()
	ctx := context.Background()

	customer := &domain.Customer{Name: "Cliente", Email: primitive.NewObjectID().Hex() + "@example.com"}
	_, err := f.customerRepo.Create(ctx, customer)
	require.NoError(t, err)

	schedule := domain.Schedule{domain.DayName(time.Now().UTC()): today}
	routine := &domain.Routine{
		Name:     "Plan de prueba",
		AuthorID: customer.ID,
		Schedule: schedule.Normalized(),
	}
	_, err = f.routineRepo.Create(ctx, routine)
	require.NoError(t, err)
	require.NoError(t, f.customerRepo.SetActiveRoutine(ctx, customer.ID, routine.ID))

	return customer.AsProfile()
}

func (f *workoutFixture) insertLog(t *testing.T, profileID primitive.ObjectID, daysAgo int) {
	t.Helper()
	date := domain.DateOnly(time.Now().UTC()).AddDate(0, 0, -daysAgo)
	_, err := f.logRepo.Create(context.Background(), &domain.WorkoutLog{
		ProfileID: profileID,
		RoutineID: primitive.NewObjectID(),
		Date:      date,
		Day:       date.Format(dayLayout),
		DayName:   domain.DayName(date),
		Exercises: []domain.ExerciseLog{{Name: "Sentadillas", Sets: []domain.SetLog{{Reps: 5, Weight: 80, Completed: true}}}},
	})
	require.NoError(t, err)
}

func TestStreakConsecutiveIncludingToday(t *testing.T) {
	f := newWorkoutFixture()
	actor := testProfile(domain.RoleClient)
	f.insertLog(t, actor.ID, 0)
	f.insertLog(t, actor.ID, 1)
	f.insertLog(t, actor.ID, 2)

	streak, err := f.svc.Streak(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreakPendingToday(t *testing.T) {
	f := newWorkoutFixture()
	actor := testProfile(domain.RoleClient)
	// Nothing today yet; yesterday and the day before still chain.
	f.insertLog(t, actor.ID, 1)
	f.insertLog(t, actor.ID, 2)

	streak, err := f.svc.Streak(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestStreakBrokenByGap(t *testing.T) {
	f := newWorkoutFixture()
	actor := testProfile(domain.RoleClient)
	// Today trained, yesterday missed: the gap resets the count to 1.
	f.insertLog(t, actor.ID, 0)
	f.insertLog(t, actor.ID, 2)

	streak, err := f.svc.Streak(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakEmptyHistory(t *testing.T) {
	f := newWorkoutFixture()
	streak, err := f.svc.Streak(context.Background(), testProfile(domain.RoleClient))
	require.NoError(t, err)
	assert.Zero(t, streak)
}

func TestStatusWithoutActiveRoutine(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()

	customer := &domain.Customer{Name: "Cliente", Email: "sinplan@example.com"}
	_, err := f.customerRepo.Create(ctx, customer)
	require.NoError(t, err)

	status, err := f.svc.Status(ctx, customer.AsProfile())
	require.NoError(t, err)
	assert.Equal(t, StateNoActiveRoutine, status.State)
	assert.Nil(t, status.Session)
}

func TestStartSessionSeedsFromSchedule(t *testing.T) {
	f := newWorkoutFixture()
	actor := f.newClientWithRoutine(t, []domain.ScheduledExercise{
		{ID: primitive.NewObjectID(), Name: "Press de Banca", Sets: 3, Weight: 60},
	})

	session, err := f.svc.StartSession(context.Background(), actor)
	require.NoError(t, err)
	require.Len(t, session.Exercises, 1)
	assert.Equal(t, "Press de Banca", session.Exercises[0].Name)
	require.Len(t, session.Exercises[0].Sets, 3)
	for _, set := range session.Exercises[0].Sets {
		assert.Zero(t, set.Reps)
		assert.Equal(t, 60.0, set.Weight)
		assert.False(t, set.Completed)
	}
}

func TestStartSessionIsStablePerDay(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	actor := f.newClientWithRoutine(t, []domain.ScheduledExercise{
		{ID: primitive.NewObjectID(), Name: "Sentadillas", Sets: 5, Weight: 80},
	})

	first, err := f.svc.StartSession(ctx, actor)
	require.NoError(t, err)

	_, err = f.svc.UpdateSet(ctx, actor, 0, 0, 5, 82.5, true)
	require.NoError(t, err)

	// Re-entering keeps the same session and the edit made to it.
	again, err := f.svc.StartSession(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 5, again.Exercises[0].Sets[0].Reps)
	assert.True(t, again.Exercises[0].Sets[0].Completed)
}

func TestStartSessionNoActiveRoutine(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	customer := &domain.Customer{Name: "Cliente", Email: "sinplan@example.com"}
	_, err := f.customerRepo.Create(ctx, customer)
	require.NoError(t, err)

	_, err = f.svc.StartSession(ctx, customer.AsProfile())
	assert.ErrorIs(t, err, ErrNoActiveRoutine)
}

func TestStartSessionStaleRoutinePointer(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	actor := f.newClientWithRoutine(t, nil)

	customer, err := f.customerRepo.GetByID(ctx, actor.ID)
	require.NoError(t, err)
	require.NoError(t, f.routineRepo.Delete(ctx, *customer.ActiveRoutineID))

	_, err = f.svc.StartSession(ctx, actor)
	assert.ErrorIs(t, err, ErrNoActiveRoutine)
}

func TestUpdateSetBounds(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	actor := f.newClientWithRoutine(t, []domain.ScheduledExercise{
		{ID: primitive.NewObjectID(), Name: "Peso Muerto", Sets: 2, Weight: 100},
	})

	_, err := f.svc.UpdateSet(ctx, actor, 0, 0, 5, 100, true)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = f.svc.StartSession(ctx, actor)
	require.NoError(t, err)

	_, err = f.svc.UpdateSet(ctx, actor, 1, 0, 5, 100, true)
	assert.ErrorIs(t, err, ErrSetOutOfRange)
	_, err = f.svc.UpdateSet(ctx, actor, 0, 2, 5, 100, true)
	assert.ErrorIs(t, err, ErrSetOutOfRange)
	_, err = f.svc.UpdateSet(ctx, actor, -1, 0, 5, 100, true)
	assert.ErrorIs(t, err, ErrSetOutOfRange)

	session, err := f.svc.UpdateSet(ctx, actor, 0, 1, 5, 100, true)
	require.NoError(t, err)
	assert.True(t, session.Exercises[0].Sets[1].Completed)
}

func TestFinishRestDayRejected(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	// Today's slot is empty: the session starts but cannot be finished.
	actor := f.newClientWithRoutine(t, nil)

	session, err := f.svc.StartSession(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, session.Exercises)

	_, err = f.svc.Finish(ctx, actor)
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestFinishAllSetsIncompleteAccepted(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	actor := f.newClientWithRoutine(t, []domain.ScheduledExercise{
		{ID: primitive.NewObjectID(), Name: "Press Militar", Sets: 3, Weight: 40},
	})

	_, err := f.svc.StartSession(ctx, actor)
	require.NoError(t, err)

	// Showing up counts even when no set got checked off.
	log, err := f.svc.Finish(ctx, actor)
	require.NoError(t, err)
	assert.Zero(t, log.Calories())
	assert.Equal(t, domain.DayName(time.Now().UTC()), log.DayName)

	streak, err := f.svc.Streak(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestFinishThenRestartRejected(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	actor := f.newClientWithRoutine(t, []domain.ScheduledExercise{
		{ID: primitive.NewObjectID(), Name: "Sentadillas", Sets: 1, Weight: 80},
	})

	_, err := f.svc.StartSession(ctx, actor)
	require.NoError(t, err)
	_, err = f.svc.Finish(ctx, actor)
	require.NoError(t, err)

	_, err = f.svc.StartSession(ctx, actor)
	assert.ErrorIs(t, err, ErrAlreadyTrained)

	// The finished session is gone; a second finish has nothing to save.
	_, err = f.svc.Finish(ctx, actor)
	assert.ErrorIs(t, err, ErrNoSession)

	status, err := f.svc.Status(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, StateCompletedToday, status.State)
}

func TestCaloriesToday(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	actor := f.newClientWithRoutine(t, []domain.ScheduledExercise{
		{ID: primitive.NewObjectID(), Name: "Sentadillas", Sets: 2, Weight: 80},
	})

	calories, err := f.svc.CaloriesToday(ctx, actor)
	require.NoError(t, err)
	assert.Zero(t, calories)

	_, err = f.svc.StartSession(ctx, actor)
	require.NoError(t, err)
	_, err = f.svc.UpdateSet(ctx, actor, 0, 0, 10, 80, true)
	require.NoError(t, err)
	_, err = f.svc.Finish(ctx, actor)
	require.NoError(t, err)

	calories, err = f.svc.CaloriesToday(ctx, actor)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, calories, 0.001)
}

func TestHistoryDayFilter(t *testing.T) {
	f := newWorkoutFixture()
	ctx := context.Background()
	actor := testProfile(domain.RoleClient)
	for daysAgo := 0; daysAgo < 8; daysAgo++ {
		f.insertLog(t, actor.ID, daysAgo)
	}

	all, err := f.svc.History(ctx, actor, "")
	require.NoError(t, err)
	require.Len(t, all, 8)
	// Newest first.
	assert.True(t, all[0].Date.After(all[1].Date))

	todayName := domain.DayName(time.Now().UTC())
	filtered, err := f.svc.History(ctx, actor, todayName)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, l := range filtered {
		assert.Equal(t, todayName, l.DayName)
	}
}
