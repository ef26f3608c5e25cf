package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrBadStatusFilter = errors.New("unknown status filter")
)

// ConflictError reports an illegal queue transition, carrying the states
// involved so the caller can correct and retry.
type ConflictError struct {
	Current   domain.TaskStatus
	Attempted domain.TaskStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot move task to '%s' from status '%s'", e.Attempted, e.Current)
}

// QueueSubmission is one proposal a client asks to persist in the queue.
// The payload arrives in generic form and is re-validated here regardless
// of where it came from.
type QueueSubmission struct {
	UserID                    primitive.ObjectID
	Intent                    domain.Intent
	Payload                   map[string]any
	Summary                   string
	Confidence                float64
	RequiresConfirmation      bool
	RequiresSuperConfirmation bool
	DedupeKey                 string
}

// QueueService drives proposals through the confirmation state machine.
// It never executes the underlying mutation; an external consumer of
// approved tasks owns that.
type QueueService interface {
	Submit(ctx context.Context, items []QueueSubmission) ([]domain.Task, error)
	List(ctx context.Context, userID primitive.ObjectID, statusFilter string) ([]domain.Task, error)
	Approve(ctx context.Context, taskID primitive.ObjectID) (*domain.Task, error)
	Reject(ctx context.Context, taskID primitive.ObjectID) (*domain.Task, error)
}

type queueService struct {
	taskRepo repository.TaskRepository
}

// NewQueueService creates a new instance of queueService.
func NewQueueService(taskRepo repository.TaskRepository) QueueService {
	return &queueService{taskRepo: taskRepo}
}

// Submit validates every item against its declared intent and persists them
// as queued tasks. Validation failures reject the whole batch before
// anything is written; no partial acceptance.
func (s *queueService) Submit(ctx context.Context, items []QueueSubmission) ([]domain.Task, error) {
	if len(items) == 0 {
		return nil, &domain.ValidationError{Detail: "no proposals submitted"}
	}

	tasks := make([]domain.Task, 0, len(items))
	for _, it := range items {
		if it.UserID == primitive.NilObjectID {
			return nil, &domain.ValidationError{Intent: it.Intent, Detail: "user id is required"}
		}
		if it.Confidence < 0 || it.Confidence > 1 {
			return nil, &domain.ValidationError{
				Intent: it.Intent,
				Detail: fmt.Sprintf("confidence must be between 0.0 and 1.0, got %v", it.Confidence),
			}
		}
		payload, err := domain.DecodePayload(it.Intent, it.Payload)
		if err != nil {
			return nil, err
		}
		// Store the normalized form of the validated payload.
		normalized, err := domain.PayloadMap(payload)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, domain.Task{
			UserID:                    it.UserID,
			Intent:                    it.Intent,
			Payload:                   normalized,
			Summary:                   it.Summary,
			Confidence:                it.Confidence,
			RequiresConfirmation:      it.RequiresConfirmation,
			RequiresSuperConfirmation: it.RequiresSuperConfirmation,
			Status:                    domain.TaskQueued,
			DedupeKey:                 it.DedupeKey,
		})
	}

	out := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		id, err := s.taskRepo.Create(ctx, &tasks[i])
		if err != nil {
			return nil, err
		}
		tasks[i].ID = id
		out = append(out, tasks[i])
	}
	return out, nil
}

// List returns a user's tasks newest-first, optionally filtered by status.
func (s *queueService) List(ctx context.Context, userID primitive.ObjectID, statusFilter string) ([]domain.Task, error) {
	var status *domain.TaskStatus
	if statusFilter != "" {
		st := domain.TaskStatus(statusFilter)
		if !domain.ValidTaskStatus(st) {
			return nil, fmt.Errorf("%w: %q", ErrBadStatusFilter, statusFilter)
		}
		status = &st
	}
	return s.taskRepo.ListByUser(ctx, userID, status)
}

// Approve moves a task to approved. Legal from queued or rejected: the
// queue is a reversible staging area, so a human changing their mind after
// rejecting is allowed. Approving an already-approved task is a conflict.
func (s *queueService) Approve(ctx context.Context, taskID primitive.ObjectID) (*domain.Task, error) {
	return s.transition(ctx, taskID,
		[]domain.TaskStatus{domain.TaskQueued, domain.TaskRejected}, domain.TaskApproved)
}

// Reject moves a task to rejected. Legal from queued or approved
// (un-approving is allowed); rejecting an already-rejected task is a
// conflict.
func (s *queueService) Reject(ctx context.Context, taskID primitive.ObjectID) (*domain.Task, error) {
	return s.transition(ctx, taskID,
		[]domain.TaskStatus{domain.TaskQueued, domain.TaskApproved}, domain.TaskRejected)
}

func (s *queueService) transition(ctx context.Context, taskID primitive.ObjectID, from []domain.TaskStatus, to domain.TaskStatus) (*domain.Task, error) {
	task, err := s.taskRepo.UpdateStatusWhere(ctx, taskID, from, to)
	if err == nil {
		return task, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if errors.Is(err, repository.ErrPreconditionFailed) {
		current, getErr := s.taskRepo.GetByID(ctx, taskID)
		if getErr != nil {
			if errors.Is(getErr, repository.ErrNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, getErr
		}
		return nil, &ConflictError{Current: current.Status, Attempted: to}
	}
	return nil, err
}
