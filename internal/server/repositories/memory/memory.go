// Package memory is an in-process RepositoryManager. It keeps all rows in
// maps guarded by one mutex and ignores the DBTX it is handed, so writes made
// inside a transaction are not rolled back. It backs handler tests that need
// real services without PostgreSQL.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/Sonchiik/Workout-Traker/internal/common"
	"github.com/Sonchiik/Workout-Traker/internal/dbx"
	"github.com/Sonchiik/Workout-Traker/internal/server/models"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/exercises"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/planexercises"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/plans"
	"github.com/Sonchiik/Workout-Traker/internal/server/repositories/users"
)

type store struct {
	mu sync.Mutex

	users     map[string]*models.User
	exercises map[int64]*models.Exercise
	plans     map[int64]*models.Plan
	links     map[int64]*models.PlanExercise

	seq int64
}

func (s *store) nextID() int64 {
	s.seq++
	return s.seq
}

// Manager implements repomanager.RepositoryManager.
type Manager struct {
	s *store
}

func NewManager() *Manager {
	return &Manager{s: &store{
		users:     map[string]*models.User{},
		exercises: map[int64]*models.Exercise{},
		plans:     map[int64]*models.Plan{},
		links:     map[int64]*models.PlanExercise{},
	}}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository                 { return (*userRepo)(m.s) }
func (m *Manager) Exercises(dbx.DBTX) exercises.Repository         { return (*exerciseRepo)(m.s) }
func (m *Manager) Plans(dbx.DBTX) plans.Repository                 { return (*planRepo)(m.s) }
func (m *Manager) PlanExercises(dbx.DBTX) planexercises.Repository { return (*linkRepo)(m.s) }

type userRepo store

func (r *userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = s.nextID()
	u.CreatedAt = time.Now().UTC()
	cp := *u
	s.users[u.UserName] = &cp
	return u, nil
}

func (r *userRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type exerciseRepo store

func (r *exerciseRepo) List(context.Context) ([]*models.Exercise, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Exercise, 0, len(s.exercises))
	for _, e := range s.exercises {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *exerciseRepo) Get(_ context.Context, id int64) (*models.Exercise, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.exercises[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *exerciseRepo) nameTaken(name string, except int64) bool {
	for _, e := range r.exercises {
		if e.Name == name && e.ID != except {
			return true
		}
	}
	return false
}

func (r *exerciseRepo) Create(_ context.Context, e *models.Exercise) (*models.Exercise, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.nameTaken(e.Name, 0) {
		return nil, common.ErrorAlreadyExists
	}
	e.ID = s.nextID()
	cp := *e
	s.exercises[e.ID] = &cp
	return e, nil
}

func (r *exerciseRepo) Update(_ context.Context, e *models.Exercise) (*models.Exercise, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exercises[e.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	if r.nameTaken(e.Name, e.ID) {
		return nil, common.ErrorAlreadyExists
	}
	cp := *e
	s.exercises[e.ID] = &cp
	return e, nil
}

func (r *exerciseRepo) Delete(_ context.Context, id int64) error {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exercises[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.exercises, id)
	for lid, l := range s.links {
		if l.ExerciseID == id {
			delete(s.links, lid)
		}
	}
	return nil
}

func (r *exerciseRepo) Seed(ctx context.Context, list []models.Exercise) (int, error) {
	n := 0
	for _, e := range list {
		if _, err := r.Create(ctx, &e); err == nil {
			n++
		}
	}
	return n, nil
}

type planRepo store

func (r *planRepo) Create(_ context.Context, p *models.Plan) (*models.Plan, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Status == "" {
		p.Status = models.PlanPending
	}
	p.ID = s.nextID()
	cp := *p
	s.plans[p.ID] = &cp
	return p, nil
}

func (r *planRepo) ListByUser(_ context.Context, userID int64) ([]*models.Plan, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Plan
	for _, p := range s.plans {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *planRepo) Get(_ context.Context, id int64) (*models.Plan, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *planRepo) Delete(_ context.Context, id int64) error {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.plans, id)
	for lid, l := range s.links {
		if l.PlanID == id {
			delete(s.links, lid)
		}
	}
	return nil
}

func (r *planRepo) UpdateSchedule(_ context.Context, id int64, schedule *time.Time) (*models.Plan, error) {
	return r.mutate(id, func(p *models.Plan) { p.Schedule = schedule })
}

func (r *planRepo) UpdateStatus(_ context.Context, id int64, status models.PlanStatus) (*models.Plan, error) {
	return r.mutate(id, func(p *models.Plan) { p.Status = status })
}

func (r *planRepo) mutate(id int64, fn func(*models.Plan)) (*models.Plan, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(p)
	cp := *p
	return &cp, nil
}

type linkRepo store

func (r *linkRepo) Create(_ context.Context, pe *models.PlanExercise) (*models.PlanExercise, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	_, planOK := s.plans[pe.PlanID]
	_, exOK := s.exercises[pe.ExerciseID]
	if !planOK || !exOK {
		return nil, common.ErrorNotFound
	}
	pe.ID = s.nextID()
	cp := *pe
	cp.Exercise = nil
	s.links[pe.ID] = &cp
	return pe, nil
}

func (r *linkRepo) ListByPlan(_ context.Context, planID int64) ([]*models.PlanExercise, error) {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.PlanExercise
	for _, l := range s.links {
		if l.PlanID != planID {
			continue
		}
		cp := *l
		if e, ok := s.exercises[l.ExerciseID]; ok {
			ex := *e
			cp.Exercise = &ex
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *linkRepo) Delete(_ context.Context, planID, exerciseID int64) error {
	s := (*store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var victim int64
	for id, l := range s.links {
		if l.PlanID == planID && l.ExerciseID == exerciseID && (victim == 0 || id < victim) {
			victim = id
		}
	}
	if victim == 0 {
		return common.ErrorNotFound
	}
	delete(s.links, victim)
	return nil
}
