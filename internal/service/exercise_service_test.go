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

func TestCreateExerciseDefaults(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepository())
	ctx := context.Background()
	author := testProfile(domain.RoleTrainer)

	ex, err := svc.CreateExercise(ctx, author, "Remo con Barra", "", true)
	require.NoError(t, err)
	assert.Equal(t, "General", ex.Category)
	assert.Equal(t, author.ID, ex.AuthorID)
	assert.Equal(t, author.Name, ex.AuthorName)
}

func TestCreateExerciseRequiresName(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepository())
	_, err := svc.CreateExercise(context.Background(), testProfile(domain.RoleTrainer), "", "Pecho", true)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestPrivateExerciseVisibleToAuthorOnly(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepository())
	ctx := context.Background()
	author := testProfile(domain.RoleClient)
	stranger := testProfile(domain.RoleClient)

	private, err := svc.CreateExercise(ctx, author, "Curl secreto", "Brazo", false)
	require.NoError(t, err)
	public, err := svc.CreateExercise(ctx, author, "Dominadas", "Espalda", true)
	require.NoError(t, err)

	visible, err := svc.ListExercises(ctx, author)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	visible, err = svc.ListExercises(ctx, stranger)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, public.ID, visible[0].ID)
	assert.NotEqual(t, private.ID, visible[0].ID)
}

func TestDeleteExerciseStaffOnly(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepository())
	ctx := context.Background()
	author := testProfile(domain.RoleClient)

	ex, err := svc.CreateExercise(ctx, author, "Zancadas", "Pierna", true)
	require.NoError(t, err)

	// Not even the author, when they are a client.
	err = svc.DeleteExercise(ctx, author, ex.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.DeleteExercise(ctx, testProfile(domain.RoleEmployee), ex.ID))

	err = svc.DeleteExercise(ctx, testProfile(domain.RoleEmployee), ex.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestDeleteExerciseUnknownID(t *testing.T) {
	svc := NewExerciseService(memory.NewExerciseRepository())
	err := svc.DeleteExercise(context.Background(), testProfile(domain.RoleAdmin), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestSeedDefaults(t *testing.T) {
	repo := memory.NewExerciseRepository()
	svc := NewExerciseService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	names := make(map[string]string, len(all))
	for _, ex := range all {
		names[ex.Name] = ex.Category
		assert.True(t, ex.IsPublic)
		assert.Equal(t, "TitanGym", ex.AuthorName)
	}
	assert.Equal(t, "Pecho", names["Press de Banca"])
	assert.Equal(t, "Pierna", names["Sentadillas"])
	assert.Equal(t, "Espalda", names["Peso Muerto"])
	assert.Equal(t, "Hombro", names["Press Militar"])
}

func TestSeedDefaultsOnlyOnEmptyCatalog(t *testing.T) {
	repo := memory.NewExerciseRepository()
	svc := NewExerciseService(repo)
	ctx := context.Background()

	_, err := svc.CreateExercise(ctx, testProfile(domain.RoleTrainer), "Burpees", "Cardio", true)
	require.NoError(t, err)

	require.NoError(t, svc.SeedDefaults(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
