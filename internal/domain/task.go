package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the confirmation state of a queued proposal.
// Executed and canceled are reserved for a future executor; no transition
// in this service produces them.
type TaskStatus string

const (
	TaskQueued   TaskStatus = "queued"
	TaskApproved TaskStatus = "approved"
	TaskRejected TaskStatus = "rejected"
	TaskExecuted TaskStatus = "executed"
	TaskCanceled TaskStatus = "canceled"
)

// ValidTaskStatus reports whether s is a known status value.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskQueued, TaskApproved, TaskRejected, TaskExecuted, TaskCanceled:
		return true
	}
	return false
}

// Task is a proposal persisted in the confirmation queue. The payload is
// stored in its generic form but has always passed intent validation before
// insertion. DedupeKey is stored for client-side resubmission suppression;
// it is not enforced server-side.
type Task struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                    primitive.ObjectID `bson:"userId" json:"userId"`
	Intent                    Intent             `bson:"intent" json:"intent"`
	Payload                   map[string]any     `bson:"payload" json:"payload"`
	Summary                   string             `bson:"summary" json:"summary"`
	Confidence                float64            `bson:"confidence" json:"confidence"`
	RequiresConfirmation      bool               `bson:"requiresConfirmation" json:"requiresConfirmation"`
	RequiresSuperConfirmation bool               `bson:"requiresSuperConfirmation" json:"requiresSuperConfirmation"`
	Status                    TaskStatus         `bson:"status" json:"status"`
	DedupeKey                 string             `bson:"dedupeKey,omitempty" json:"dedupeKey,omitempty"`
	CreatedAt                 time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt                 time.Time          `bson:"updatedAt" json:"updatedAt"`
}
