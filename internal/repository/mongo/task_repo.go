package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const taskCollectionName = "ai_tasks"

// mongoTaskRepository implements repository.TaskRepository
type mongoTaskRepository struct {
	collection *mongo.Collection
}

// NewMongoTaskRepository creates a new queue task repository.
func NewMongoTaskRepository(db *mongo.Database) repository.TaskRepository {
	return &mongoTaskRepository{
		collection: db.Collection(taskCollectionName),
	}
}

// Create inserts a new task in queued state.
func (r *mongoTaskRepository) Create(ctx context.Context, task *domain.Task) (primitive.ObjectID, error) {
	if task.UserID == primitive.NilObjectID || task.Intent == "" {
		return primitive.NilObjectID, errors.New("task requires userId and intent")
	}
	task.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = domain.TaskQueued
	}

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted task ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single task.
func (r *mongoTaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error) {
	var task domain.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByUser retrieves a user's tasks, newest-created-first, optionally
// filtered by status.
func (r *mongoTaskRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, status *domain.TaskStatus) ([]domain.Task, error) {
	filter := bson.M{"userId": userID}
	if status != nil {
		filter["status"] = *status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []domain.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatusWhere performs the compare-and-swap status transition: the
// update only matches when the current status is one of `from`, so two
// concurrent transitions on the same task cannot both win. When nothing
// matches, a follow-up read distinguishes NotFound from a failed
// precondition.
func (r *mongoTaskRepository) UpdateStatusWhere(ctx context.Context, id primitive.ObjectID, from []domain.TaskStatus, to domain.TaskStatus) (*domain.Task, error) {
	filter := bson.M{"_id": id, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{
		"status":    to,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task domain.Task
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	if err == nil {
		return &task, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr // repository.ErrNotFound or a real error
	}
	return nil, repository.ErrPreconditionFailed
}

// EnsureTaskIndexes creates necessary indexes. Call during startup.
func EnsureTaskIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
