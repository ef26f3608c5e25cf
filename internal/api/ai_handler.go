package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aidandawley/Futures-Coaching/internal/ai"
	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AIHandler serves the chat, interpreter and task-queue endpoints.
type AIHandler struct {
	responder    *ai.Responder
	queueService service.QueueService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(responder *ai.Responder, queueService service.QueueService) *AIHandler {
	return &AIHandler{responder: responder, queueService: queueService}
}

// --- DTOs ---

// ChatMessage is one transcript turn as sent by the client.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required,min=1"`
}

// ChatRequest carries a transcript plus an optional conversation scope.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
	UserID   string        `json:"userId"`
	Scope    string        `json:"scope"`
}

// ChatReply is the assistant's conversational answer.
type ChatReply struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueueTaskRequest is one proposal a client submits to the queue.
type QueueTaskRequest struct {
	UserID                    string         `json:"user_id" binding:"required"`
	Intent                    string         `json:"intent" binding:"required"`
	Payload                   map[string]any `json:"payload" binding:"required"`
	Summary                   string         `json:"summary"`
	Confidence                float64        `json:"confidence"`
	RequiresConfirmation      *bool          `json:"requires_confirmation"`
	RequiresSuperConfirmation bool           `json:"requires_super_confirmation"`
	DedupeKey                 string         `json:"dedupe_key"`
}

// TaskResponse is the DTO for returning queue entries. Field names match
// the payload conventions the chat clients already speak.
type TaskResponse struct {
	ID                        string         `json:"id"`
	UserID                    string         `json:"user_id"`
	Intent                    string         `json:"intent"`
	Payload                   map[string]any `json:"payload"`
	Summary                   string         `json:"summary"`
	Confidence                float64        `json:"confidence"`
	RequiresConfirmation      bool           `json:"requires_confirmation"`
	RequiresSuperConfirmation bool           `json:"requires_super_confirmation"`
	Status                    string         `json:"status"`
	DedupeKey                 string         `json:"dedupe_key,omitempty"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
}

// MapTaskToResponse converts a domain.Task to TaskResponse DTO.
func MapTaskToResponse(t *domain.Task) TaskResponse {
	if t == nil {
		return TaskResponse{}
	}
	return TaskResponse{
		ID:                        t.ID.Hex(),
		UserID:                    t.UserID.Hex(),
		Intent:                    string(t.Intent),
		Payload:                   t.Payload,
		Summary:                   t.Summary,
		Confidence:                t.Confidence,
		RequiresConfirmation:      t.RequiresConfirmation,
		RequiresSuperConfirmation: t.RequiresSuperConfirmation,
		Status:                    string(t.Status),
		DedupeKey:                 t.DedupeKey,
		CreatedAt:                 t.CreatedAt,
		UpdatedAt:                 t.UpdatedAt,
	}
}

func mapTasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = MapTaskToResponse(&tasks[i])
	}
	return out
}

func toAIMessages(msgs []ChatMessage) []ai.Message {
	out := make([]ai.Message, len(msgs))
	for i, m := range msgs {
		out[i] = ai.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// --- Handler Methods ---

// Chat handles POST /ai/chat. Mock mode answers deterministically; live
// mode calls the model and maps upstream failures to 502.
func (h *AIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reply, err := h.responder.Reply(c.Request.Context(), toAIMessages(req.Messages), ai.Scope(req.Scope))
	if err != nil {
		if errors.Is(err, ai.ErrUpstream) {
			abortWithError(c, http.StatusBadGateway, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate reply")
		return
	}
	c.JSON(http.StatusOK, ChatReply{Role: ai.RoleAssistant, Content: reply})
}

// Interpret handles POST /ai/plan/interpret: read the conversation and
// return typed proposals plus a confirmation question. Ambiguity comes
// back as a clarification with zero proposals, never an error.
func (h *AIHandler) Interpret(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result := ai.Interpret(toAIMessages(req.Messages), time.Now())
	c.JSON(http.StatusOK, result)
}

// QueueTasks handles POST /ai/tasks/queue: accept one or more proposals
// and store them as queued tasks, each validated against its intent.
func (h *AIHandler) QueueTasks(c *gin.Context) {
	var items []QueueTaskRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	subs := make([]service.QueueSubmission, 0, len(items))
	for _, it := range items {
		userID, err := primitive.ObjectIDFromHex(it.UserID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid user_id format")
			return
		}
		requiresConfirmation := true
		if it.RequiresConfirmation != nil {
			requiresConfirmation = *it.RequiresConfirmation
		}
		subs = append(subs, service.QueueSubmission{
			UserID:                    userID,
			Intent:                    domain.Intent(it.Intent),
			Payload:                   it.Payload,
			Summary:                   it.Summary,
			Confidence:                it.Confidence,
			RequiresConfirmation:      requiresConfirmation,
			RequiresSuperConfirmation: it.RequiresSuperConfirmation,
			DedupeKey:                 it.DedupeKey,
		})
	}

	tasks, err := h.queueService.Submit(c.Request.Context(), subs)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			abortWithError(c, http.StatusBadRequest, vErr.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to queue tasks")
		return
	}
	c.JSON(http.StatusOK, mapTasksToResponse(tasks))
}

// ListTasks handles GET /ai/tasks?user_id=...&status=...
func (h *AIHandler) ListTasks(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Query("user_id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid or missing user_id")
		return
	}

	tasks, err := h.queueService.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrBadStatusFilter) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, mapTasksToResponse(tasks))
}

// ApproveTask handles POST /ai/tasks/:id/approve.
func (h *AIHandler) ApproveTask(c *gin.Context) {
	h.transition(c, h.queueService.Approve)
}

// RejectTask handles POST /ai/tasks/:id/reject.
func (h *AIHandler) RejectTask(c *gin.Context) {
	h.transition(c, h.queueService.Reject)
}

func (h *AIHandler) transition(c *gin.Context, fn func(ctx context.Context, id primitive.ObjectID) (*domain.Task, error)) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := fn(c.Request.Context(), id)
	if err != nil {
		var conflict *service.ConflictError
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			abortWithError(c, http.StatusNotFound, "Task not found")
		case errors.As(err, &conflict):
			abortWithError(c, http.StatusConflict, conflict.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update task")
		}
		return
	}
	c.JSON(http.StatusOK, MapTaskToResponse(task))
}
