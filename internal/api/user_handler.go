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

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

// CreateUserRequest defines the expected JSON for creating a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
}

// UserResponse is the DTO for returning user details.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapUserToResponse converts a domain.User to UserResponse DTO.
func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// --- Handler Methods ---

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			abortWithError(c, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, service.ErrEmptyUsername):
			abortWithError(c, http.StatusBadRequest, "Username is required")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// EnsureUser handles POST /users/ensure: return the existing user with this
// username, or create one if it doesn't exist.
func (h *UserHandler) EnsureUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.EnsureUser(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, service.ErrEmptyUsername) {
			abortWithError(c, http.StatusBadRequest, "Username is required")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to ensure user")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetUser handles GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, out)
}
