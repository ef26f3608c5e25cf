package repository

import (
	"context"

	"github.com/aidandawley/Futures-Coaching/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	// ErrPreconditionFailed means the document exists but the guarded
	// update's expected prior state did not hold.
	ErrPreconditionFailed = RepositoryError("precondition failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// WorkoutRepository defines the interface for interacting with workout
// session data. Date arguments are ISO YYYY-MM-DD strings; ranges are
// inclusive on both ends.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	ListByUserInRange(ctx context.Context, userID primitive.ObjectID, start, end string) ([]domain.WorkoutSession, error)
	ListByUserOn(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, workout *domain.WorkoutSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SetRepository defines the interface for interacting with exercise sets.
type SetRepository interface {
	Create(ctx context.Context, set *domain.ExerciseSet) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, sets []domain.ExerciseSet) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error)
	ListByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error)
	Update(ctx context.Context, set *domain.ExerciseSet) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByWorkout(ctx context.Context, workoutID primitive.ObjectID) error
}

// TaskRepository defines the interface for the proposal confirmation queue.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error)
	// ListByUser returns tasks newest-created-first; status nil means all.
	ListByUser(ctx context.Context, userID primitive.ObjectID, status *domain.TaskStatus) ([]domain.Task, error)
	// UpdateStatusWhere atomically moves a task to status `to` only if its
	// current status is one of `from` (compare-and-swap; see ErrPreconditionFailed).
	// Returns the updated task.
	UpdateStatusWhere(ctx context.Context, id primitive.ObjectID, from []domain.TaskStatus, to domain.TaskStatus) (*domain.Task, error)
}
