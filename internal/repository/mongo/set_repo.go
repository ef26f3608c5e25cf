package mongo

import (
	"context"
	"errors"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const setCollectionName = "exercise_sets"

// mongoSetRepository implements repository.SetRepository
type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new exercise set repository.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

// Create inserts a single set.
func (r *mongoSetRepository) Create(ctx context.Context, set *domain.ExerciseSet) (primitive.ObjectID, error) {
	if set.WorkoutID == primitive.NilObjectID || set.Exercise == "" {
		return primitive.NilObjectID, errors.New("set requires workoutId and exercise")
	}
	set.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted set ID")
	}
	return insertedID, nil
}

// CreateMany inserts a batch of sets, e.g. "3 sets of 8" expanded to rows.
func (r *mongoSetRepository) CreateMany(ctx context.Context, sets []domain.ExerciseSet) ([]primitive.ObjectID, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	docs := make([]interface{}, len(sets))
	ids := make([]primitive.ObjectID, len(sets))
	for i := range sets {
		if sets[i].WorkoutID == primitive.NilObjectID || sets[i].Exercise == "" {
			return nil, errors.New("set requires workoutId and exercise")
		}
		sets[i].ID = primitive.NewObjectID()
		ids[i] = sets[i].ID
		docs[i] = sets[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetByID retrieves a single set.
func (r *mongoSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error) {
	var set domain.ExerciseSet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

// ListByWorkout retrieves all sets belonging to a workout, insertion order.
func (r *mongoSetRepository) ListByWorkout(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"workoutId": workoutID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.ExerciseSet
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// Update replaces the mutable fields of a set.
func (r *mongoSetRepository) Update(ctx context.Context, set *domain.ExerciseSet) error {
	if set.ID == primitive.NilObjectID {
		return errors.New("set ID is required for update")
	}
	update := bson.M{"$set": bson.M{
		"exercise": set.Exercise,
		"reps":     set.Reps,
		"weight":   set.Weight,
		"rpe":      set.RPE,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": set.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a set by id.
func (r *mongoSetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByWorkout removes all sets belonging to a workout; used when the
// workout itself is deleted.
func (r *mongoSetRepository) DeleteByWorkout(ctx context.Context, workoutID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID})
	return err
}

// EnsureSetIndexes creates necessary indexes. Call during startup.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
