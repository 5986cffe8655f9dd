package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/logging"
	"github.com/Sonchiik/Workout-Traker/internal/server/auth"
	"github.com/Sonchiik/Workout-Traker/internal/server/cache"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
)

var (
	admin  = &auth.Identity{UserName: "alice", UserID: 1, IsAdmin: true}
	member = &auth.Identity{UserName: "bob", UserID: 2}
)

func squat() models.Exercise {
	return models.Exercise{Name: "Squat", Category: models.CategoryStrength, MuscleCategory: models.MuscleLegs}
}

func newExerciseService(t *testing.T, rm *fakeRepoManager, c *cache.Cache) *ExerciseService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewExerciseService(db, rm, c, logging.Discard())
}

func newRedisCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute, logging.Discard())
}

func TestExerciseList_EmptyIsNotFound(t *testing.T) {
	s := newExerciseService(t, newFakeRepoManager(), nil)

	_, err := s.List(context.Background())
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestExerciseList_CachedUntilMutation(t *testing.T) {
	rm := newFakeRepoManager()
	rm.e = newFakeExercisesRepo(squat())
	s := newExerciseService(t, rm, newRedisCache(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, 1, rm.e.calls)

	_, err := s.Create(ctx, admin, &models.Exercise{Name: "Plank", Category: models.CategoryFlexibility, MuscleCategory: models.MuscleBack})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, rm.e.calls)
}

func TestExerciseGet(t *testing.T) {
	rm := newFakeRepoManager()
	rm.e = newFakeExercisesRepo(squat())
	s := newExerciseService(t, rm, newRedisCache(t))
	ctx := context.Background()

	e, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Squat", e.Name)

	_, err = s.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestExerciseCreate(t *testing.T) {
	rm := newFakeRepoManager()
	s := newExerciseService(t, rm, nil)
	ctx := context.Background()

	e := squat()
	created, err := s.Create(ctx, admin, &e)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	dup := squat()
	_, err = s.Create(ctx, admin, &dup)
	assert.ErrorIs(t, err, ErrExerciseExists)

	bad := models.Exercise{Name: "Yoga", Category: "zen", MuscleCategory: models.MuscleBack}
	_, err = s.Create(ctx, admin, &bad)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestExerciseMutations_RequireAdmin(t *testing.T) {
	rm := newFakeRepoManager()
	rm.e = newFakeExercisesRepo(squat())
	s := newExerciseService(t, rm, nil)
	ctx := context.Background()

	e := squat()
	_, err := s.Create(ctx, member, &e)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	e.ID = 1
	_, err = s.Update(ctx, member, &e)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	assert.ErrorIs(t, s.Delete(ctx, member, 1), common.ErrorForbidden)
	assert.ErrorIs(t, s.Delete(ctx, nil, 1), common.ErrorUnauthorized)

	// Forbidden is decided before lookup, even for ids that do not exist.
	assert.ErrorIs(t, s.Delete(ctx, member, 999), common.ErrorForbidden)

	_, err = rm.e.Get(ctx, 1)
	assert.NoError(t, err, "exercise must survive a forbidden delete")
}

func TestExerciseUpdateDelete(t *testing.T) {
	rm := newFakeRepoManager()
	rm.e = newFakeExercisesRepo(squat(), models.Exercise{Name: "Plank", Category: models.CategoryFlexibility, MuscleCategory: models.MuscleBack})
	s := newExerciseService(t, rm, nil)
	ctx := context.Background()

	upd := squat()
	upd.ID = 1
	upd.Description = "Back squat"
	got, err := s.Update(ctx, admin, &upd)
	require.NoError(t, err)
	assert.Equal(t, "Back squat", got.Description)

	clash := squat()
	clash.ID = 2
	_, err = s.Update(ctx, admin, &clash)
	assert.ErrorIs(t, err, ErrExerciseExists)

	missing := squat()
	missing.ID = 77
	_, err = s.Update(ctx, admin, &missing)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	require.NoError(t, s.Delete(ctx, admin, 1))
	assert.ErrorIs(t, s.Delete(ctx, admin, 1), ErrExerciseNotFound)
}

func TestExerciseSeed_Idempotent(t *testing.T) {
	rm := newFakeRepoManager()
	s := newExerciseService(t, rm, newRedisCache(t))
	ctx := context.Background()
	list := []models.Exercise{squat(), {Name: "Running", Category: models.CategoryCardio, MuscleCategory: models.MuscleLegs}}

	n, err := s.Seed(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Seed(ctx, list)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
