package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/dbx"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/exercises"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/planexercises"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/plans"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	byName    map[string]*models.User
	nextID    int64
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.byName[u.UserName] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// --- exercises ---

type fakeExercisesRepo struct {
	items   map[int64]*models.Exercise
	nextID  int64
	listErr error
	calls   int
}

func newFakeExercisesRepo(list ...models.Exercise) *fakeExercisesRepo {
	f := &fakeExercisesRepo{items: map[int64]*models.Exercise{}}
	for _, e := range list {
		e := e
		_, _ = f.Create(context.Background(), &e)
	}
	return f
}

func (f *fakeExercisesRepo) List(context.Context) ([]*models.Exercise, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Exercise
	for _, e := range f.items {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeExercisesRepo) Get(_ context.Context, id int64) (*models.Exercise, error) {
	f.calls++
	e, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExercisesRepo) nameTaken(name string, except int64) bool {
	for _, e := range f.items {
		if e.Name == name && e.ID != except {
			return true
		}
	}
	return false
}

func (f *fakeExercisesRepo) Create(_ context.Context, e *models.Exercise) (*models.Exercise, error) {
	if f.nameTaken(e.Name, 0) {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	e.ID = f.nextID
	cp := *e
	f.items[e.ID] = &cp
	return e, nil
}

func (f *fakeExercisesRepo) Update(_ context.Context, e *models.Exercise) (*models.Exercise, error) {
	if _, ok := f.items[e.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	if f.nameTaken(e.Name, e.ID) {
		return nil, common.ErrorAlreadyExists
	}
	cp := *e
	f.items[e.ID] = &cp
	return e, nil
}

func (f *fakeExercisesRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeExercisesRepo) Seed(ctx context.Context, list []models.Exercise) (int, error) {
	n := 0
	for _, e := range list {
		e := e
		if _, err := f.Create(ctx, &e); err == nil {
			n++
		}
	}
	return n, nil
}

// --- plans ---

type fakePlansRepo struct {
	items  map[int64]*models.Plan
	nextID int64
	getErr error
}

func newFakePlansRepo() *fakePlansRepo {
	return &fakePlansRepo{items: map[int64]*models.Plan{}}
}

func (f *fakePlansRepo) Create(_ context.Context, p *models.Plan) (*models.Plan, error) {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.items[p.ID] = &cp
	return p, nil
}

func (f *fakePlansRepo) ListByUser(_ context.Context, userID int64) ([]*models.Plan, error) {
	var out []*models.Plan
	for _, p := range f.items {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePlansRepo) Get(_ context.Context, id int64) (*models.Plan, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlansRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakePlansRepo) UpdateSchedule(_ context.Context, id int64, schedule *time.Time) (*models.Plan, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Schedule = schedule
	cp := *p
	return &cp, nil
}

func (f *fakePlansRepo) UpdateStatus(_ context.Context, id int64, status models.PlanStatus) (*models.Plan, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Status = status
	cp := *p
	return &cp, nil
}

// --- plan exercises ---

type fakePlanExercisesRepo struct {
	items  []*models.PlanExercise
	nextID int64
}

func (f *fakePlanExercisesRepo) Create(_ context.Context, pe *models.PlanExercise) (*models.PlanExercise, error) {
	f.nextID++
	pe.ID = f.nextID
	cp := *pe
	f.items = append(f.items, &cp)
	return pe, nil
}

func (f *fakePlanExercisesRepo) ListByPlan(_ context.Context, planID int64) ([]*models.PlanExercise, error) {
	var out []*models.PlanExercise
	for _, pe := range f.items {
		if pe.PlanID == planID {
			cp := *pe
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePlanExercisesRepo) Delete(_ context.Context, planID, exerciseID int64) error {
	for i, pe := range f.items {
		if pe.PlanID == planID && pe.ExerciseID == exerciseID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	e  *fakeExercisesRepo
	p  *fakePlansRepo
	pe *fakePlanExercisesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u:  newFakeUsersRepo(),
		e:  newFakeExercisesRepo(),
		p:  newFakePlansRepo(),
		pe: &fakePlanExercisesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) Exercises(dbx.DBTX) exercises.Repository         { return m.e }
func (m *fakeRepoManager) Plans(dbx.DBTX) plans.Repository                 { return m.p }
func (m *fakeRepoManager) PlanExercises(dbx.DBTX) planexercises.Repository { return m.pe }
