package service

import (
	"context"
	"sync"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories mirroring the mongo implementations' error
// contracts, shared by the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	cp := *user
	cp.ID = id
	r.users[id] = &cp
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeWorkoutRepo struct {
	mu       sync.Mutex
	workouts map[primitive.ObjectID]*domain.WorkoutSession
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.WorkoutSession)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.WorkoutSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	cp := *w
	cp.ID = id
	r.workouts[id] = &cp
	return id, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWorkoutRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WorkoutSession
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) ListByUserInRange(_ context.Context, userID primitive.ObjectID, start, end string) ([]domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WorkoutSession
	for _, w := range r.workouts {
		if w.UserID == userID && w.ScheduledFor >= start && w.ScheduledFor <= end {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) ListByUserOn(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.WorkoutSession, error) {
	return r.ListByUserInRange(ctx, userID, day, day)
}

func (r *fakeWorkoutRepo) Update(_ context.Context, w *domain.WorkoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[w.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *w
	r.workouts[w.ID] = &cp
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

type fakeSetRepo struct {
	mu   sync.Mutex
	sets map[primitive.ObjectID]*domain.ExerciseSet
}

func newFakeSetRepo() *fakeSetRepo {
	return &fakeSetRepo{sets: make(map[primitive.ObjectID]*domain.ExerciseSet)}
}

func (r *fakeSetRepo) Create(_ context.Context, set *domain.ExerciseSet) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	cp := *set
	cp.ID = id
	r.sets[id] = &cp
	return id, nil
}

func (r *fakeSetRepo) CreateMany(ctx context.Context, sets []domain.ExerciseSet) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(sets))
	for i := range sets {
		id, err := r.Create(ctx, &sets[i])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeSetRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSetRepo) ListByWorkout(_ context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ExerciseSet
	for _, s := range r.sets {
		if s.WorkoutID == workoutID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSetRepo) Update(_ context.Context, set *domain.ExerciseSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[set.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *set
	r.sets[set.ID] = &cp
	return nil
}

func (r *fakeSetRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sets, id)
	return nil
}

func (r *fakeSetRepo) DeleteByWorkout(_ context.Context, workoutID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sets {
		if s.WorkoutID == workoutID {
			delete(r.sets, id)
		}
	}
	return nil
}
