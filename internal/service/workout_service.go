package service

import (
	"context"
	"errors"
	"time"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrSetNotFound     = errors.New("set not found")
	ErrInvalidDate     = errors.New("date must be a valid YYYY-MM-DD date")
	ErrInvalidStatus   = errors.New("status must be planned, done or rest")
	ErrInvalidSetSpec  = errors.New("reps must be 1-100 and count 1-50")
)

// WorkoutPatch carries a partial update; nil fields are left unchanged.
type WorkoutPatch struct {
	Title        *string
	Notes        *string
	Status       *domain.WorkoutStatus
	ScheduledFor *string
}

// SetPatch carries a partial update to one exercise set.
type SetPatch struct {
	Exercise *string
	Reps     *int
	Weight   *float64
	RPE      *float64
}

// WorkoutService owns workout sessions and their sets.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID primitive.ObjectID, title, notes, scheduledFor string) (*domain.WorkoutSession, error)
	GetWorkoutDetail(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, []domain.ExerciseSet, error)
	ListWorkoutsByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	ListWorkoutsInRange(ctx context.Context, userID primitive.ObjectID, start, end string) ([]domain.WorkoutSession, error)
	ListWorkoutsOn(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.WorkoutSession, error)
	UpdateWorkout(ctx context.Context, id primitive.ObjectID, patch WorkoutPatch) (*domain.WorkoutSession, error)
	DeleteWorkout(ctx context.Context, id primitive.ObjectID) error

	CreateSet(ctx context.Context, workoutID primitive.ObjectID, exercise string, reps int, weight, rpe *float64) (*domain.ExerciseSet, error)
	BulkCreateSets(ctx context.Context, workoutID primitive.ObjectID, exercise string, reps, count int, weight *float64) ([]domain.ExerciseSet, error)
	ListSetsByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error)
	UpdateSet(ctx context.Context, id primitive.ObjectID, patch SetPatch) (*domain.ExerciseSet, error)
	DeleteSet(ctx context.Context, id primitive.ObjectID) error
}

type workoutService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	setRepo     repository.SetRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository, setRepo repository.SetRepository) WorkoutService {
	return &workoutService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		setRepo:     setRepo,
	}
}

func validDay(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (s *workoutService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, title, notes, scheduledFor string) (*domain.WorkoutSession, error) {
	// Ensure the referenced user exists so the session never dangles.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if scheduledFor != "" && !validDay(scheduledFor) {
		return nil, ErrInvalidDate
	}

	workout := &domain.WorkoutSession{
		UserID:       userID,
		Title:        title,
		Notes:        notes,
		Status:       domain.WorkoutPlanned,
		ScheduledFor: scheduledFor,
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return s.workoutRepo.GetByID(ctx, id)
}

func (s *workoutService) GetWorkoutDetail(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, []domain.ExerciseSet, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrWorkoutNotFound
		}
		return nil, nil, err
	}
	sets, err := s.setRepo.ListByWorkout(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return workout, sets, nil
}

func (s *workoutService) ListWorkoutsByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	return s.workoutRepo.ListByUser(ctx, userID)
}

func (s *workoutService) ListWorkoutsInRange(ctx context.Context, userID primitive.ObjectID, start, end string) ([]domain.WorkoutSession, error) {
	if !validDay(start) || !validDay(end) {
		return nil, ErrInvalidDate
	}
	return s.workoutRepo.ListByUserInRange(ctx, userID, start, end)
}

func (s *workoutService) ListWorkoutsOn(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.WorkoutSession, error) {
	if !validDay(day) {
		return nil, ErrInvalidDate
	}
	return s.workoutRepo.ListByUserOn(ctx, userID, day)
}

func (s *workoutService) UpdateWorkout(ctx context.Context, id primitive.ObjectID, patch WorkoutPatch) (*domain.WorkoutSession, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	changed := false
	if patch.Title != nil {
		workout.Title = *patch.Title
		changed = true
	}
	if patch.Notes != nil {
		workout.Notes = *patch.Notes
		changed = true
	}
	if patch.Status != nil {
		if !domain.ValidWorkoutStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}
		workout.Status = *patch.Status
		changed = true
	}
	if patch.ScheduledFor != nil {
		if !validDay(*patch.ScheduledFor) {
			return nil, ErrInvalidDate
		}
		workout.ScheduledFor = *patch.ScheduledFor
		changed = true
	}

	if !changed {
		return workout, nil
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes a session and cascades to its sets.
func (s *workoutService) DeleteWorkout(ctx context.Context, id primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return s.setRepo.DeleteByWorkout(ctx, id)
}

func (s *workoutService) CreateSet(ctx context.Context, workoutID primitive.ObjectID, exercise string, reps int, weight, rpe *float64) (*domain.ExerciseSet, error) {
	if reps < 1 || reps > domain.MaxReps {
		return nil, ErrInvalidSetSpec
	}
	if _, err := s.workoutRepo.GetByID(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	set := &domain.ExerciseSet{
		WorkoutID: workoutID,
		Exercise:  exercise,
		Reps:      reps,
		Weight:    weight,
		RPE:       rpe,
	}
	id, err := s.setRepo.Create(ctx, set)
	if err != nil {
		return nil, err
	}
	set.ID = id
	return set, nil
}

// BulkCreateSets expands "count sets of reps" into individual rows, the
// executor-side counterpart of an upsert_sets proposal.
func (s *workoutService) BulkCreateSets(ctx context.Context, workoutID primitive.ObjectID, exercise string, reps, count int, weight *float64) ([]domain.ExerciseSet, error) {
	if reps < 1 || reps > domain.MaxReps || count < 1 || count > domain.MaxSetCount {
		return nil, ErrInvalidSetSpec
	}
	if _, err := s.workoutRepo.GetByID(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	sets := make([]domain.ExerciseSet, count)
	for i := range sets {
		sets[i] = domain.ExerciseSet{
			WorkoutID: workoutID,
			Exercise:  exercise,
			Reps:      reps,
			Weight:    weight,
		}
	}
	if _, err := s.setRepo.CreateMany(ctx, sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (s *workoutService) ListSetsByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	return s.setRepo.ListByWorkout(ctx, workoutID)
}

func (s *workoutService) UpdateSet(ctx context.Context, id primitive.ObjectID, patch SetPatch) (*domain.ExerciseSet, error) {
	set, err := s.setRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}

	if patch.Exercise != nil {
		set.Exercise = *patch.Exercise
	}
	if patch.Reps != nil {
		if *patch.Reps < 1 || *patch.Reps > domain.MaxReps {
			return nil, ErrInvalidSetSpec
		}
		set.Reps = *patch.Reps
	}
	if patch.Weight != nil {
		set.Weight = patch.Weight
	}
	if patch.RPE != nil {
		set.RPE = patch.RPE
	}

	if err := s.setRepo.Update(ctx, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	return set, nil
}

func (s *workoutService) DeleteSet(ctx context.Context, id primitive.ObjectID) error {
	if err := s.setRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSetNotFound
		}
		return err
	}
	return nil
}
