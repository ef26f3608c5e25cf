package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ExerciseSet is one performed or planned set inside a workout session.
// Weight and RPE are optional so sets can be planned before loading is known.
type ExerciseSet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Exercise  string             `bson:"exercise" json:"exercise"`
	Reps      int                `bson:"reps" json:"reps"`
	Weight    *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	RPE       *float64           `bson:"rpe,omitempty" json:"rpe,omitempty"`
}
