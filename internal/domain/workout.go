package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutStatus tracks where a session sits on the calendar.
type WorkoutStatus string

const (
	WorkoutPlanned WorkoutStatus = "planned"
	WorkoutDone    WorkoutStatus = "done"
	WorkoutRest    WorkoutStatus = "rest"
)

// ValidWorkoutStatus reports whether s is one of the known statuses.
func ValidWorkoutStatus(s WorkoutStatus) bool {
	switch s {
	case WorkoutPlanned, WorkoutDone, WorkoutRest:
		return true
	}
	return false
}

// WorkoutSession represents a single scheduled or logged workout.
// ScheduledFor is an ISO date string (YYYY-MM-DD); ISO strings sort
// lexicographically, which the range queries rely on.
type WorkoutSession struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status       WorkoutStatus      `bson:"status" json:"status"`
	ScheduledFor string             `bson:"scheduledFor,omitempty" json:"scheduledFor,omitempty"`
	StartedAt    time.Time          `bson:"startedAt" json:"startedAt"`
}
