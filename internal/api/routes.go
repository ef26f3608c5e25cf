package api

import (
	"net/http"

	"github.com/aidandawley/Futures-Coaching/internal/ai"
	"github.com/aidandawley/Futures-Coaching/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all HTTP endpoints onto the gin engine.
func SetupRoutes(
	router *gin.Engine,
	userService service.UserService,
	workoutService service.WorkoutService,
	queueService service.QueueService,
	responder *ai.Responder,
) {
	userHandler := NewUserHandler(userService)
	workoutHandler := NewWorkoutHandler(workoutService)
	aiHandler := NewAIHandler(responder, queueService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	usersGroup := router.Group("/users")
	{
		usersGroup.POST("", userHandler.CreateUser)
		usersGroup.POST("/ensure", userHandler.EnsureUser)
		usersGroup.GET("", userHandler.ListUsers)
		usersGroup.GET("/:id", userHandler.GetUser)
	}

	workoutsGroup := router.Group("/workouts")
	{
		workoutsGroup.POST("", workoutHandler.CreateWorkout)
		workoutsGroup.GET("/by_user/:userId", workoutHandler.ListWorkoutsByUser)
		workoutsGroup.GET("/by_user/:userId/with_sets", workoutHandler.ListWorkoutsWithSets)
		workoutsGroup.GET("/:id/detail", workoutHandler.GetWorkoutDetail)
		workoutsGroup.PATCH("/:id", workoutHandler.UpdateWorkout)
		workoutsGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
	}

	setsGroup := router.Group("/sets")
	{
		setsGroup.POST("", workoutHandler.CreateSet)
		setsGroup.POST("/bulk", workoutHandler.BulkCreateSets)
		setsGroup.GET("/by_workout/:workoutId", workoutHandler.ListSetsByWorkout)
		setsGroup.PATCH("/:id", workoutHandler.UpdateSet)
		setsGroup.DELETE("/:id", workoutHandler.DeleteSet)
	}

	aiGroup := router.Group("/ai")
	{
		aiGroup.POST("/chat", aiHandler.Chat)
		aiGroup.POST("/plan/interpret", aiHandler.Interpret)
		aiGroup.POST("/tasks/queue", aiHandler.QueueTasks)
		aiGroup.GET("/tasks", aiHandler.ListTasks)
		aiGroup.POST("/tasks/:id/approve", aiHandler.ApproveTask)
		aiGroup.POST("/tasks/:id/reject", aiHandler.RejectTask)
	}
}
