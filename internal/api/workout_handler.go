package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/aidandawley/Futures-Coaching/internal/domain"
	"github.com/aidandawley/Futures-Coaching/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

// CreateWorkoutRequest defines the expected JSON for creating a session.
type CreateWorkoutRequest struct {
	UserID       string `json:"userId" binding:"required"`
	Title        string `json:"title"`
	Notes        string `json:"notes"`
	ScheduledFor string `json:"scheduledFor" binding:"omitempty,datetime=2006-01-02"`
}

// PatchWorkoutRequest is a partial update; absent fields stay unchanged.
type PatchWorkoutRequest struct {
	Title        *string `json:"title"`
	Notes        *string `json:"notes"`
	Status       *string `json:"status"`
	ScheduledFor *string `json:"scheduledFor"`
}

// WorkoutResponse is the DTO for returning session details.
type WorkoutResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	ScheduledFor string    `json:"scheduledFor,omitempty"`
	StartedAt    time.Time `json:"startedAt"`
}

// WorkoutWithSetsResponse bundles a session with its sets.
type WorkoutWithSetsResponse struct {
	WorkoutResponse
	Sets []SetResponse `json:"sets"`
}

// SetResponse is the DTO for returning one exercise set.
type SetResponse struct {
	ID        string   `json:"id"`
	WorkoutID string   `json:"workoutId"`
	Exercise  string   `json:"exercise"`
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
	RPE       *float64 `json:"rpe,omitempty"`
}

// CreateSetRequest defines the expected JSON for logging one set.
type CreateSetRequest struct {
	WorkoutID string   `json:"workoutId" binding:"required"`
	Exercise  string   `json:"exercise" binding:"required"`
	Reps      int      `json:"reps" binding:"required,min=1,max=100"`
	Weight    *float64 `json:"weight"`
	RPE       *float64 `json:"rpe"`
}

// BulkCreateSetsRequest creates count identical sets for one exercise.
type BulkCreateSetsRequest struct {
	WorkoutID string   `json:"workoutId" binding:"required"`
	Exercise  string   `json:"exercise" binding:"required"`
	Reps      int      `json:"reps" binding:"required,min=1,max=100"`
	Count     int      `json:"count" binding:"required,min=1,max=50"`
	Weight    *float64 `json:"weight"`
}

// PatchSetRequest is a partial update to one set.
type PatchSetRequest struct {
	Exercise *string  `json:"exercise"`
	Reps     *int     `json:"reps"`
	Weight   *float64 `json:"weight"`
	RPE      *float64 `json:"rpe"`
}

// MapWorkoutToResponse converts a domain.WorkoutSession to its DTO.
func MapWorkoutToResponse(w *domain.WorkoutSession) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:           w.ID.Hex(),
		UserID:       w.UserID.Hex(),
		Title:        w.Title,
		Notes:        w.Notes,
		Status:       string(w.Status),
		ScheduledFor: w.ScheduledFor,
		StartedAt:    w.StartedAt,
	}
}

// MapSetToResponse converts a domain.ExerciseSet to its DTO.
func MapSetToResponse(s *domain.ExerciseSet) SetResponse {
	if s == nil {
		return SetResponse{}
	}
	return SetResponse{
		ID:        s.ID.Hex(),
		WorkoutID: s.WorkoutID.Hex(),
		Exercise:  s.Exercise,
		Reps:      s.Reps,
		Weight:    s.Weight,
		RPE:       s.RPE,
	}
}

func mapSetsToResponse(sets []domain.ExerciseSet) []SetResponse {
	out := make([]SetResponse, len(sets))
	for i := range sets {
		out[i] = MapSetToResponse(&sets[i])
	}
	return out
}

func mapWorkoutsToResponse(workouts []domain.WorkoutSession) []WorkoutResponse {
	out := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		out[i] = MapWorkoutToResponse(&workouts[i])
	}
	return out
}

func (h *WorkoutHandler) abortServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusBadRequest, "Invalid userId: user does not exist")
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, "Workout not found")
	case errors.Is(err, service.ErrSetNotFound):
		abortWithError(c, http.StatusNotFound, "Set not found")
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidSetSpec):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Workout Handler Methods ---

// CreateWorkout handles POST /workouts.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid userId format")
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, req.Title, req.Notes, req.ScheduledFor)
	if err != nil {
		h.abortServiceError(c, err, "Failed to create workout")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetWorkoutDetail handles GET /workouts/:id/detail.
func (h *WorkoutHandler) GetWorkoutDetail(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	workout, sets, err := h.workoutService.GetWorkoutDetail(c.Request.Context(), id)
	if err != nil {
		h.abortServiceError(c, err, "Failed to get workout")
		return
	}
	c.JSON(http.StatusOK, WorkoutWithSetsResponse{
		WorkoutResponse: MapWorkoutToResponse(workout),
		Sets:            mapSetsToResponse(sets),
	})
}

// ListWorkoutsByUser handles GET /workouts/by_user/:userId.
// Optional query params start/end (YYYY-MM-DD) narrow to an inclusive
// range; on=<day> narrows to a single day.
func (h *WorkoutHandler) ListWorkoutsByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	ctx := c.Request.Context()
	var workouts []domain.WorkoutSession
	start, end := c.Query("start"), c.Query("end")
	switch {
	case start != "" || end != "":
		workouts, err = h.workoutService.ListWorkoutsInRange(ctx, userID, start, end)
	case c.Query("on") != "":
		workouts, err = h.workoutService.ListWorkoutsOn(ctx, userID, c.Query("on"))
	default:
		workouts, err = h.workoutService.ListWorkoutsByUser(ctx, userID)
	}
	if err != nil {
		h.abortServiceError(c, err, "Failed to list workouts")
		return
	}
	c.JSON(http.StatusOK, mapWorkoutsToResponse(workouts))
}

// ListWorkoutsWithSets handles GET /workouts/by_user/:userId/with_sets.
func (h *WorkoutHandler) ListWorkoutsWithSets(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	ctx := c.Request.Context()
	var workouts []domain.WorkoutSession
	start, end := c.Query("start"), c.Query("end")
	if start != "" || end != "" {
		workouts, err = h.workoutService.ListWorkoutsInRange(ctx, userID, start, end)
	} else {
		workouts, err = h.workoutService.ListWorkoutsByUser(ctx, userID)
	}
	if err != nil {
		h.abortServiceError(c, err, "Failed to list workouts")
		return
	}

	out := make([]WorkoutWithSetsResponse, len(workouts))
	for i := range workouts {
		sets, err := h.workoutService.ListSetsByWorkout(ctx, workouts[i].ID)
		if err != nil {
			h.abortServiceError(c, err, "Failed to list sets")
			return
		}
		out[i] = WorkoutWithSetsResponse{
			WorkoutResponse: MapWorkoutToResponse(&workouts[i]),
			Sets:            mapSetsToResponse(sets),
		}
	}
	c.JSON(http.StatusOK, out)
}

// UpdateWorkout handles PATCH /workouts/:id.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}
	var req PatchWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patch := service.WorkoutPatch{
		Title:        req.Title,
		Notes:        req.Notes,
		ScheduledFor: req.ScheduledFor,
	}
	if req.Status != nil {
		st := domain.WorkoutStatus(*req.Status)
		patch.Status = &st
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), id, patch)
	if err != nil {
		h.abortServiceError(c, err, "Failed to update workout")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout handles DELETE /workouts/:id (sets cascade).
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), id); err != nil {
		h.abortServiceError(c, err, "Failed to delete workout")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Set Handler Methods ---

// CreateSet handles POST /sets.
func (h *WorkoutHandler) CreateSet(c *gin.Context) {
	var req CreateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workoutId format")
		return
	}

	set, err := h.workoutService.CreateSet(c.Request.Context(), workoutID, req.Exercise, req.Reps, req.Weight, req.RPE)
	if err != nil {
		h.abortServiceError(c, err, "Failed to create set")
		return
	}
	c.JSON(http.StatusCreated, MapSetToResponse(set))
}

// BulkCreateSets handles POST /sets/bulk.
func (h *WorkoutHandler) BulkCreateSets(c *gin.Context) {
	var req BulkCreateSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workoutId format")
		return
	}

	sets, err := h.workoutService.BulkCreateSets(c.Request.Context(), workoutID, req.Exercise, req.Reps, req.Count, req.Weight)
	if err != nil {
		h.abortServiceError(c, err, "Failed to create sets")
		return
	}
	c.JSON(http.StatusCreated, mapSetsToResponse(sets))
}

// ListSetsByWorkout handles GET /sets/by_workout/:workoutId.
func (h *WorkoutHandler) ListSetsByWorkout(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}
	sets, err := h.workoutService.ListSetsByWorkout(c.Request.Context(), workoutID)
	if err != nil {
		h.abortServiceError(c, err, "Failed to list sets")
		return
	}
	c.JSON(http.StatusOK, mapSetsToResponse(sets))
}

// UpdateSet handles PATCH /sets/:id.
func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid set ID format")
		return
	}
	var req PatchSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	set, err := h.workoutService.UpdateSet(c.Request.Context(), id, service.SetPatch{
		Exercise: req.Exercise,
		Reps:     req.Reps,
		Weight:   req.Weight,
		RPE:      req.RPE,
	})
	if err != nil {
		h.abortServiceError(c, err, "Failed to update set")
		return
	}
	c.JSON(http.StatusOK, MapSetToResponse(set))
}

// DeleteSet handles DELETE /sets/:id.
func (h *WorkoutHandler) DeleteSet(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid set ID format")
		return
	}
	if err := h.workoutService.DeleteSet(c.Request.Context(), id); err != nil {
		h.abortServiceError(c, err, "Failed to delete set")
		return
	}
	c.Status(http.StatusNoContent)
}
