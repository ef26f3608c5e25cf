package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTaskRepo is an in-memory TaskRepository with the same compare-and-swap
// contract as the mongo implementation.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]*domain.Task
	seq   int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[primitive.ObjectID]*domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	cp := *task
	cp.ID = id
	r.seq++
	cp.CreatedAt = time.Unix(int64(r.seq), 0)
	cp.UpdatedAt = cp.CreatedAt
	r.tasks[id] = &cp
	return id, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) ListByUser(_ context.Context, userID primitive.ObjectID, status *domain.TaskStatus) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) UpdateStatusWhere(_ context.Context, id primitive.ObjectID, from []domain.TaskStatus, to domain.TaskStatus) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	legal := false
	for _, f := range from {
		if t.Status == f {
			legal = true
			break
		}
	}
	if !legal {
		return nil, repository.ErrPreconditionFailed
	}
	t.Status = to
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func validSubmission(userID primitive.ObjectID) QueueSubmission {
	return QueueSubmission{
		UserID: userID,
		Intent: domain.IntentAddWorkout,
		Payload: map[string]any{
			"date":  "2025-10-16",
			"title": "Push Day",
		},
		Summary:              "Add 'Push Day' on 2025-10-16.",
		Confidence:           0.75,
		RequiresConfirmation: true,
	}
}

func TestQueueSubmit(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewQueueService(repo)
	userID := primitive.NewObjectID()

	tasks, err := svc.Submit(context.Background(), []QueueSubmission{validSubmission(userID)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks; want 1", len(tasks))
	}
	task := tasks[0]
	if task.Status != domain.TaskQueued {
		t.Errorf("status = %q; want queued", task.Status)
	}
	if task.ID.IsZero() {
		t.Error("task id not assigned")
	}
	if task.Payload["title"] != "Push Day" {
		t.Errorf("payload = %v", task.Payload)
	}
}

func TestQueueSubmitRejectsWholeBatchOnOneBadItem(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewQueueService(repo)
	userID := primitive.NewObjectID()

	bad := validSubmission(userID)
	bad.Payload = map[string]any{"date": "2025-13-01", "title": "X"}

	_, err := svc.Submit(context.Background(), []QueueSubmission{validSubmission(userID), bad})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err is %T; want *ValidationError", err)
	}

	// The valid item must not have been persisted either.
	left, _ := svc.List(context.Background(), userID, "")
	if len(left) != 0 {
		t.Fatalf("queue holds %d tasks after rejected batch; want 0", len(left))
	}
}

func TestQueueSubmitValidationCases(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewQueueService(repo)
	userID := primitive.NewObjectID()

	cases := []struct {
		name   string
		mutate func(*QueueSubmission)
	}{
		{"missing user", func(s *QueueSubmission) { s.UserID = primitive.NilObjectID }},
		{"confidence above 1", func(s *QueueSubmission) { s.Confidence = 1.5 }},
		{"negative confidence", func(s *QueueSubmission) { s.Confidence = -0.1 }},
		{"unknown intent", func(s *QueueSubmission) { s.Intent = domain.Intent("explode") }},
		{"payload missing field", func(s *QueueSubmission) { delete(s.Payload, "title") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission(userID)
			tc.mutate(&sub)
			if _, err := svc.Submit(context.Background(), []QueueSubmission{sub}); err == nil {
				t.Fatal("expected an error")
			}
		})
	}

	if _, err := svc.Submit(context.Background(), nil); err == nil {
		t.Fatal("empty batch must fail")
	}
}

func TestQueueApproveTwiceConflicts(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewQueueService(repo)
	userID := primitive.NewObjectID()

	tasks, err := svc.Submit(context.Background(), []QueueSubmission{validSubmission(userID)})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	id := tasks[0].ID

	approved, err := svc.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.TaskApproved {
		t.Fatalf("status = %q; want approved", approved.Status)
	}

	_, err = svc.Approve(context.Background(), id)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second approve err = %v; want ConflictError", err)
	}
	if conflict.Current != domain.TaskApproved || conflict.Attempted != domain.TaskApproved {
		t.Fatalf("conflict = %+v", conflict)
	}
}

func TestQueueRejectThenApproveIsLegal(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewQueueService(repo)
	userID := primitive.NewObjectID()

	tasks, _ := svc.Submit(context.Background(), []QueueSubmission{validSubmission(userID)})
	id := tasks[0].ID

	rejected, err := svc.Reject(context.Background(), id)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != domain.TaskRejected {
		t.Fatalf("status = %q; want rejected", rejected.Status)
	}

	// A human changing their mind after rejecting is allowed.
	approved, err := svc.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("Approve after Reject: %v", err)
	}
	if approved.Status != domain.TaskApproved {
		t.Fatalf("status = %q; want approved", approved.Status)
	}

	// And back again: un-approving is also legal.
	if _, err := svc.Reject(context.Background(), id); err != nil {
		t.Fatalf("Reject after Approve: %v", err)
	}
	// But rejecting twice is a conflict.
	_, err = svc.Reject(context.Background(), id)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second reject err = %v; want ConflictError", err)
	}
}

func TestQueueTransitionsOnMissingTask(t *testing.T) {
	svc := NewQueueService(newFakeTaskRepo())

	if _, err := svc.Approve(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Approve err = %v; want ErrTaskNotFound", err)
	}
	if _, err := svc.Reject(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Reject err = %v; want ErrTaskNotFound", err)
	}
}

func TestQueueListFilters(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewQueueService(repo)
	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	mine, _ := svc.Submit(context.Background(), []QueueSubmission{
		validSubmission(userID), validSubmission(userID),
	})
	svc.Submit(context.Background(), []QueueSubmission{validSubmission(otherID)})
	svc.Approve(context.Background(), mine[0].ID)

	all, err := svc.List(context.Background(), userID, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d tasks; want 2", len(all))
	}
	// Newest first.
	if !all[0].CreatedAt.After(all[1].CreatedAt) {
		t.Error("tasks not newest-first")
	}

	queued, err := svc.List(context.Background(), userID, "queued")
	if err != nil {
		t.Fatalf("List queued: %v", err)
	}
	if len(queued) != 1 || queued[0].Status != domain.TaskQueued {
		t.Fatalf("queued filter = %+v", queued)
	}

	if _, err := svc.List(context.Background(), userID, "pending"); !errors.Is(err, ErrBadStatusFilter) {
		t.Fatalf("bad filter err = %v; want ErrBadStatusFilter", err)
	}
}
